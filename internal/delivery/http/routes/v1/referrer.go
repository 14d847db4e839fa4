package v1

import (
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterReferrer(r fiber.Router, h Handlers, access *middleware.AccessMiddleware) {
	referrer := r.Group("/referrer", access.RequireRole(user.RoleReferrer))
	referrer.Get("/profile", h.Profile.GetReferrer)
	referrer.Put("/profile", h.Profile.UpdateReferrer)
	referrer.Post("/onboarding", h.Profile.OnboardReferrer)

	inbox := referrer.Group("/referrals", access.RequireOnboarded())
	inbox.Get("/", h.Referral.Inbox)
	inbox.Post("/:id/accept", h.Referral.Accept)
	inbox.Post("/:id/reject", h.Referral.Reject)
	inbox.Post("/:id/refer", h.Referral.Refer)
}

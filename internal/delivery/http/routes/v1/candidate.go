package v1

import (
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterCandidate(r fiber.Router, h Handlers, access *middleware.AccessMiddleware) {
	candidate := r.Group("/candidate", access.RequireRole(user.RoleCandidate))
	candidate.Get("/profile", h.Profile.GetCandidate)
	candidate.Put("/profile", h.Profile.UpdateCandidate)
	candidate.Post("/onboarding", h.Profile.OnboardCandidate)

	jobs := candidate.Group("/jobs", access.RequireOnboarded())
	jobs.Get("/recommended", h.Recommendation.GetRecommendations)

	referrals := candidate.Group("/referrals", access.RequireOnboarded())
	referrals.Post("/", h.Referral.Request)
	referrals.Get("/", h.Referral.ListMine)
	referrals.Post("/pitch", h.Referral.DraftPitch)
	referrals.Post("/:id/withdraw", h.Referral.Withdraw)
}

package v1

import (
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterAdmin(r fiber.Router, h Handlers, access *middleware.AccessMiddleware) {
	admin := r.Group("/admin", access.RequireRole(user.RoleAdmin))
	admin.Get("/profile", h.Profile.GetAdmin)
	admin.Put("/profile", h.Profile.UpdateAdmin)
	admin.Post("/onboarding", h.Profile.OnboardAdmin)

	onboarded := access.RequireOnboarded()
	admin.Get("/users", onboarded, h.Admin.ListUsers)
	admin.Post("/users/:id/ban", onboarded, h.Admin.Ban)
	admin.Post("/users/:id/unban", onboarded, h.Admin.Unban)
	admin.Put("/users/:id/role", onboarded, h.Admin.ChangeRole)
	admin.Post("/referrers/:id/verify", onboarded, h.Admin.VerifyReferrer)
	admin.Delete("/jobs/:id", onboarded, h.Admin.DeleteJob)
	admin.Get("/stats", onboarded, h.Admin.Stats)
}

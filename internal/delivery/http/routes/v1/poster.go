package v1

import (
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterPoster(r fiber.Router, h Handlers, access *middleware.AccessMiddleware) {
	poster := r.Group("/poster", access.RequireRole(user.RolePoster))
	poster.Get("/profile", h.Profile.GetPoster)
	poster.Put("/profile", h.Profile.UpdatePoster)
	poster.Post("/profile/logo", h.Profile.UploadPosterLogo)
	poster.Post("/onboarding", h.Profile.OnboardPoster)

	jobs := poster.Group("/jobs", access.RequireOnboarded())
	jobs.Post("/", h.PosterJobs.Create)
	jobs.Get("/", h.PosterJobs.List)
	jobs.Post("/import", h.PosterJobs.Import)
	jobs.Get("/:id", h.PosterJobs.Get)
	jobs.Put("/:id", h.PosterJobs.Update)
	jobs.Delete("/:id", h.PosterJobs.Delete)
	jobs.Post("/:id/close", h.PosterJobs.Close)
	jobs.Post("/:id/reopen", h.PosterJobs.Reopen)
	jobs.Get("/:id/referrals", h.PosterJobs.Referrals)
}

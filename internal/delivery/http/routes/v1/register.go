package v1

import (
	"time"

	"referhub/internal/delivery/http/handler"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Session        *handler.SessionHandler
	Profile        *handler.ProfileHandler
	Jobs           *handler.JobsHandler
	Recommendation *handler.JobRecommendationHandler
	PosterJobs     *handler.PosterJobHandler
	Referral       *handler.ReferralHandler
	Chat           *handler.ChatHandler
	Admin          *handler.AdminHandler
}

type Guards struct {
	Auth          *middleware.AuthMiddleware
	Access        *middleware.AccessMiddleware
	AuthRateLimit int
}

// protectedPrefixes need a bearer token and a loaded session. Listing them
// keeps an unknown path under /api/v1 a 404 instead of a 401.
var protectedPrefixes = []string{"/session", "/me", "/poster", "/referrer", "/candidate", "/admin", "/referrals"}

// Register mounts /api/v1. The auth chain is registered before any protected
// route so it runs first for them.
func Register(r fiber.Router, h Handlers, g Guards) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth", authLimiter(g.AuthRateLimit))
	h.Auth.RegisterRoutes(authGroup)

	h.Jobs.RegisterRoutes(r)

	r.Use(protectedPrefixes, g.Auth.Middleware(), g.Access.Session())
	r.Get("/session", h.Session.Get)
	h.User.RegisterRoutes(r)

	RegisterPoster(r, h, g.Access)
	RegisterReferrer(r, h, g.Access)
	RegisterCandidate(r, h, g.Access)
	RegisterAdmin(r, h, g.Access)
	RegisterChat(r, h, g.Access)
}

func authLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 20
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c fiber.Ctx) error {
			return middleware.NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil, nil)
		},
	})
}

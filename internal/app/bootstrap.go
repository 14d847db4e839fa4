package app

import (
	"fmt"
	"log"
	"strings"

	"referhub/internal/config"
	"referhub/internal/delivery/http/handler"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/delivery/http/routes"
	v1 "referhub/internal/delivery/http/routes/v1"
	"referhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// bodyLimit leaves headroom over the 5 MiB image cap for multipart framing.
const bodyLimit = 6 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:         c.Config.App.AppName,
		BodyLimit:       bodyLimit,
		ErrorHandler:    errMw.Handler,
		StructValidator: middleware.NewStructValidator(),
	})

	registerGlobalMiddleware(f, c.Config, c.Logger, errMw)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(cors.New(corsConfig(cfg.App.CORSOrigins)))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = []string{"*"}
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	handlers := v1.Handlers{
		Auth:           handler.NewAuthHandler(c.Auth),
		User:           handler.NewUserHandler(c.Users),
		Session:        handler.NewSessionHandler(),
		Profile:        handler.NewProfileHandler(c.Profiles),
		Jobs:           handler.NewJobsHandler(c.JobList),
		Recommendation: handler.NewJobRecommendationHandler(c.JobList),
		PosterJobs:     handler.NewPosterJobHandler(c.Jobs, c.Referrals),
		Referral:       handler.NewReferralHandler(c.Referrals),
		Chat:           handler.NewChatHandler(c.Chat, ws.NewHandler(c.Hub, c.Config.App.CORSOrigins, c.Logger)),
		Admin:          handler.NewAdminHandler(c.Admin),
	}
	guards := v1.Guards{
		Auth:          middleware.NewAuthMiddleware(c.JWT),
		Access:        middleware.NewAccessMiddleware(c.Sessions),
		AuthRateLimit: c.Config.App.AuthRateLimit,
	}

	health := handler.NewHealthHandler(c.DB, c.Cache)
	routes.NewRegistry(health, handlers, guards).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

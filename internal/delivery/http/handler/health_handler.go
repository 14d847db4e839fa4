package handler

import (
	"context"
	"time"

	"referhub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports each dependency separately. Postgres down is a 503;
// Redis down only degrades caching, so the service still reports ok.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	pg := probe(ctx, h.db)
	rd := probe(ctx, h.cache)

	status := fiber.StatusOK
	if pg != "up" {
		status = fiber.StatusServiceUnavailable
	}

	data := map[string]string{"postgres": pg, "redis": rd}
	return response.Success(c, status, "", data)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

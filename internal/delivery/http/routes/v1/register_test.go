package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"referhub/internal/delivery/http/handler"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/access"
	"referhub/internal/domain/user"
	"referhub/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubSessions struct{}

func (stubSessions) Load(_ context.Context, id uuid.UUID) (access.Session, error) {
	return access.Session{UserID: id, Role: user.RoleCandidate}, nil
}

func TestRegister_UnknownRoutesAreNotFound(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	tok, err := svc.GenerateAccessToken(uuid.New(), "c@referhub.test", string(user.RoleCandidate))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	errMw := middleware.NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler})
	app.Use(errMw.Middleware())
	Register(app.Group("/api/v1"), Handlers{Session: handler.NewSessionHandler()}, Guards{
		Auth:   middleware.NewAuthMiddleware(svc),
		Access: middleware.NewAccessMiddleware(stubSessions{}),
	})

	cases := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"unknown without token", "/api/v1/nope", "", fiber.StatusNotFound},
		{"unknown with token", "/api/v1/nope", tok, fiber.StatusNotFound},
		{"unknown under auth", "/api/v1/auth/nope", "", fiber.StatusNotFound},
		{"protected without token", "/api/v1/session", "", fiber.StatusUnauthorized},
		{"protected nested without token", "/api/v1/candidate/profile", "", fiber.StatusUnauthorized},
		{"protected with token", "/api/v1/session", tok, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.token != "" {
				r.Header.Set("Authorization", "Bearer "+tc.token)
			}
			res, err := app.Test(r)
			if err != nil {
				t.Fatalf("test: %v", err)
			}
			if res.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, res.StatusCode)
			}
		})
	}
}

package middleware

import (
	"context"
	"errors"

	"referhub/internal/domain/access"
	"referhub/internal/domain/user"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SessionLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (access.Session, error)
}

// AccessMiddleware enforces role areas and the onboarding gate. Refusals
// are 403 with the landing path in data.redirect.
type AccessMiddleware struct {
	sessions SessionLoader
}

func NewAccessMiddleware(sessions SessionLoader) *AccessMiddleware {
	return &AccessMiddleware{sessions: sessions}
}

// Session loads the caller's session once per request. Banned users are
// refused here so every protected route shares the check.
func (m *AccessMiddleware) Session() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, err := m.load(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func (m *AccessMiddleware) RequireRole(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := m.load(c)
		if err != nil {
			return err
		}
		if !s.HasRole(roles...) {
			return redirect(access.Resolve(s))
		}
		return c.Next()
	}
}

func (m *AccessMiddleware) RequireOnboarded() fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := m.load(c)
		if err != nil {
			return err
		}
		if !access.Onboarded(s) {
			return redirect(access.Resolve(s))
		}
		return c.Next()
	}
}

func (m *AccessMiddleware) load(c fiber.Ctx) (access.Session, error) {
	if s, ok := c.Locals(CtxSessionKey).(access.Session); ok {
		return s, nil
	}

	userID, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return access.Session{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	s, err := m.sessions.Load(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			return access.Session{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", response.Redirect{Redirect: access.PathLogin}, err)
		}
		return access.Session{}, NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	if s.Banned {
		return access.Session{}, redirect(access.PathBanned)
	}

	c.Locals(CtxSessionKey, s)
	return s, nil
}

func SessionFromLocals(c fiber.Ctx) (access.Session, bool) {
	s, ok := c.Locals(CtxSessionKey).(access.Session)
	return s, ok
}

func redirect(path string) *AppError {
	return NewAppError(fiber.StatusForbidden, response.MessageForbidden, response.Redirect{Redirect: path}, nil)
}

package handler

import (
	"referhub/internal/delivery/http/dto"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// SessionHandler tells the client where the current user belongs. It runs
// behind AccessMiddleware.Session, which has already loaded the session.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	s, ok := middleware.SessionFromLocals(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

package v1

import (
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterChat(r fiber.Router, h Handlers, access *middleware.AccessMiddleware) {
	chat := r.Group("/referrals",
		access.RequireRole(user.RoleCandidate, user.RoleReferrer),
		access.RequireOnboarded(),
	)
	chat.Get("/:id/messages", h.Chat.List)
	chat.Post("/:id/messages", h.Chat.Post)
	chat.Get("/:id/ws", h.Chat.Socket)
}

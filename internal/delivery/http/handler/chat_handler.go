package handler

import (
	"strings"
	"time"

	"referhub/internal/delivery/http/dto"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SocketUpgrader interface {
	Upgrade(c fiber.Ctx, topic string) error
}

type ChatHandler struct {
	uc usecase.ChatUsecase
	ws SocketUpgrader
}

type postMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func NewChatHandler(uc usecase.ChatUsecase, ws SocketUpgrader) *ChatHandler {
	return &ChatHandler{uc: uc, ws: ws}
}

func (h *ChatHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}

	var before *time.Time
	if s := strings.TrimSpace(c.Query("before")); s != "" {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid before", nil, err)
		}
		before = &t
	}

	items, err := h.uc.Messages(c.Context(), userID, id, limit, before)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageList(items))
}

func (h *ChatHandler) Post(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req postMessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	msg, err := h.uc.Post(c.Context(), userID, id, req.Body)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMessageResponse(msg))
}

// Socket joins the caller to the referral's room once they are confirmed as
// a participant.
func (h *ChatHandler) Socket(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.uc.Authorize(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	if h.ws == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, nil)
	}
	return h.ws.Upgrade(c, usecase.ChatTopic(id))
}

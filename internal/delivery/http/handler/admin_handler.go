package handler

import (
	"strings"

	"referhub/internal/delivery/http/dto"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/user"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=poster referrer candidate admin"`
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	var role *user.Role
	if s := strings.TrimSpace(c.Query("role")); s != "" {
		r, ok := user.ParseRole(strings.ToLower(s))
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", nil, nil)
		}
		role = &r
	}

	items, err := h.uc.ListUsers(c.Context(), role, c.Query("q"), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserList(items))
}

func (h *AdminHandler) Ban(c fiber.Ctx) error {
	return h.setBanned(c, true)
}

func (h *AdminHandler) Unban(c fiber.Ctx) error {
	return h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c fiber.Ctx, banned bool) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	usr, err := h.uc.SetBanned(c.Context(), adminID, targetID, banned)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *AdminHandler) ChangeRole(c fiber.Ctx) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}
	targetID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req changeRoleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	role, ok := user.ParseRole(req.Role)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", nil, nil)
	}

	usr, err := h.uc.ChangeRole(c.Context(), adminID, targetID, role)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *AdminHandler) VerifyReferrer(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.VerifyReferrer(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) DeleteJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteJob(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

package handler

import (
	"io"
	"strings"

	"referhub/internal/delivery/http/dto"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"
	useruc "referhub/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

const maxImageBytes = 5 << 20

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateMeRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=120"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Post("/me/avatar", h.UploadAvatar)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.FullName == nil && req.Password == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateMe(c.Context(), userID, useruc.UpdateMeInput{FullName: req.FullName, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UploadAvatar(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	file, closeFn, err := openImage(c)
	if err != nil {
		return err
	}
	defer closeFn()

	usr, err := h.uc.UploadAvatar(c.Context(), userID, file)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

// openImage reads the multipart "file" field. Only images up to
// maxImageBytes are accepted.
func openImage(c fiber.Ctx) (io.Reader, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Missing file", nil, err)
	}
	if fh.Size <= 0 || fh.Size > maxImageBytes {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "File must be between 1 byte and 5 MiB", nil, nil)
	}
	if !strings.HasPrefix(strings.ToLower(fh.Header.Get("Content-Type")), "image/") {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "File must be an image", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file", nil, err)
	}
	return f, func() { _ = f.Close() }, nil
}

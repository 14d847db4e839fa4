package handler

import (
	"errors"
	"strconv"
	"strings"

	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/access"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"
	ucauth "referhub/internal/usecase/auth"
	useruc "referhub/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, ucauth.ErrInvalidInput),
		errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrProfileIncomplete):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Profile incomplete", nil, err)
	case errors.Is(err, usecase.ErrImportFailed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not extract a job from that page", nil, err)
	case errors.Is(err, usecase.ErrReferrerNotVerified):
		return middleware.NewAppError(fiber.StatusForbidden, "Referrer not verified", nil, err)
	case errors.Is(err, usecase.ErrProtectedAccount):
		return middleware.NewAppError(fiber.StatusForbidden, "Admin accounts cannot be banned", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, ucauth.ErrBanned):
		return middleware.NewAppError(fiber.StatusForbidden, "Account banned", response.Redirect{Redirect: access.PathBanned}, err)
	case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrReferralNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Referral not found", nil, err)
	case errors.Is(err, usecase.ErrJobClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Job is closed", nil, err)
	case errors.Is(err, usecase.ErrReferralExists):
		return middleware.NewAppError(fiber.StatusConflict, "Referral already requested", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrReferralChanged):
		return middleware.NewAppError(fiber.StatusConflict, "Referral was updated, reload and retry", nil, err)
	case errors.Is(err, usecase.ErrChatClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Chat is not open", nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrThrottled):
		return middleware.NewAppError(fiber.StatusTooManyRequests, "Please wait before trying again", nil, err)
	case errors.Is(err, usecase.ErrUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func uuidParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

// bindBody decodes and validates the JSON body. Validation failures carry
// the offending fields in data.
func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		if fields := middleware.FieldErrors(err); fields != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}

func pagination(c fiber.Ctx) (int, int, error) {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

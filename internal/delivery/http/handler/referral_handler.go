package handler

import (
	"strings"

	"referhub/internal/delivery/http/dto"
	"referhub/internal/delivery/http/middleware"
	"referhub/internal/domain/referral"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReferralHandler struct {
	uc usecase.ReferralUsecase
}

type requestReferralRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
	Pitch string `json:"pitch" validate:"max=4000"`
}

type draftPitchRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

func NewReferralHandler(uc usecase.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{uc: uc}
}

func (h *ReferralHandler) Request(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req requestReferralRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
	}

	v, err := h.uc.Request(c.Context(), userID, jobID, req.Pitch)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewReferralResponse(v))
}

func (h *ReferralHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferralList(items))
}

func (h *ReferralHandler) Withdraw(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	v, err := h.uc.Withdraw(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferralResponse(v))
}

func (h *ReferralHandler) DraftPitch(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req draftPitchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job_id", nil, err)
	}

	pitch, err := h.uc.DraftPitch(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"pitch": pitch})
}

func (h *ReferralHandler) Inbox(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	var status *referral.Status
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		st := referral.Status(strings.ToLower(s))
		if !st.Valid() {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, nil)
		}
		status = &st
	}

	items, err := h.uc.Inbox(c.Context(), userID, status, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferralList(items))
}

func (h *ReferralHandler) Accept(c fiber.Ctx) error {
	return h.act(c, referral.StatusAccepted)
}

func (h *ReferralHandler) Reject(c fiber.Ctx) error {
	return h.act(c, referral.StatusRejected)
}

func (h *ReferralHandler) Refer(c fiber.Ctx) error {
	return h.act(c, referral.StatusReferred)
}

func (h *ReferralHandler) act(c fiber.Ctx, to referral.Status) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	v, err := h.uc.Act(c.Context(), userID, id, to)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferralResponse(v))
}

package handler

import (
	"referhub/internal/delivery/http/dto"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.JobListUsecase
}

func NewJobRecommendationHandler(uc usecase.JobListUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return err
	}

	items, err := h.uc.Recommend(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationList(items))
}

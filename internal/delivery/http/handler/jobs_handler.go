package handler

import (
	"referhub/internal/delivery/http/dto"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// JobsHandler is the public job board.
type JobsHandler struct {
	uc usecase.JobListUsecase
}

func NewJobsHandler(uc usecase.JobListUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Get("/jobs/:id", h.HandleGetJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Company:  c.Query("company"),
		Skill:    c.Query("skill"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobList(items))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.GetOpenJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

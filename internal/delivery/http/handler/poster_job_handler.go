package handler

import (
	"referhub/internal/delivery/http/dto"
	"referhub/internal/domain/job"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PosterJobHandler manages the jobs a poster owns.
type PosterJobHandler struct {
	jobs      usecase.JobUsecase
	referrals usecase.ReferralUsecase
}

type createJobRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	CompanyName    string   `json:"company_name" validate:"omitempty,max=200"`
	Location       string   `json:"location" validate:"omitempty,max=200"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Description    string   `json:"description" validate:"required"`
	SalaryRange    *string  `json:"salary_range" validate:"omitempty,max=120"`
	Skills         []string `json:"skills"`
}

type updateJobRequest struct {
	Title          *string   `json:"title" validate:"omitempty,max=200"`
	CompanyName    *string   `json:"company_name" validate:"omitempty,max=200"`
	Location       *string   `json:"location" validate:"omitempty,max=200"`
	EmploymentType *string   `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Description    *string   `json:"description"`
	SalaryRange    *string   `json:"salary_range" validate:"omitempty,max=120"`
	Skills         *[]string `json:"skills"`
}

type importJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func NewPosterJobHandler(jobs usecase.JobUsecase, referrals usecase.ReferralUsecase) *PosterJobHandler {
	return &PosterJobHandler{jobs: jobs, referrals: referrals}
}

func (h *PosterJobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.Create(c.Context(), userID, usecase.JobInput{
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		SalaryRange:    req.SalaryRange,
		Skills:         req.Skills,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewJobResponse(j))
}

func (h *PosterJobHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.jobs.ListOwn(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobList(items))
}

func (h *PosterJobHandler) Get(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.GetOwn(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *PosterJobHandler) Update(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.Update(c.Context(), userID, jobID, usecase.JobPatch{
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		SalaryRange:    req.SalaryRange,
		Skills:         req.Skills,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *PosterJobHandler) Close(c fiber.Ctx) error {
	return h.setStatus(c, job.StatusClosed)
}

func (h *PosterJobHandler) Reopen(c fiber.Ctx) error {
	return h.setStatus(c, job.StatusOpen)
}

func (h *PosterJobHandler) setStatus(c fiber.Ctx, status job.Status) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.SetStatus(c.Context(), userID, jobID, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *PosterJobHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobs.Delete(c.Context(), userID, jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// Import returns an extracted draft for the poster to review. Nothing is
// saved until they submit it through Create.
func (h *PosterJobHandler) Import(c fiber.Ctx) error {
	var req importJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	draft, err := h.jobs.Import(c.Context(), req.URL)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, draft)
}

func (h *PosterJobHandler) Referrals(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.referrals.ForJob(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferralList(items))
}

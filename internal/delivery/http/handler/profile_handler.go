package handler

import (
	"context"
	"io"

	"referhub/internal/delivery/http/dto"
	"referhub/internal/domain/profile"
	"referhub/internal/pkg/response"
	"referhub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetPoster(ctx context.Context, userID uuid.UUID) (profile.Poster, error)
	UpdatePoster(ctx context.Context, userID uuid.UUID, in usecase.PosterInput) (profile.Poster, error)
	OnboardPoster(ctx context.Context, userID uuid.UUID, in usecase.PosterInput) (profile.Poster, error)
	UploadPosterLogo(ctx context.Context, userID uuid.UUID, r io.Reader) (profile.Poster, error)

	GetReferrer(ctx context.Context, userID uuid.UUID) (profile.Referrer, error)
	UpdateReferrer(ctx context.Context, userID uuid.UUID, in usecase.ReferrerInput) (profile.Referrer, error)
	OnboardReferrer(ctx context.Context, userID uuid.UUID, in usecase.ReferrerInput) (profile.Referrer, error)

	GetCandidate(ctx context.Context, userID uuid.UUID) (profile.Candidate, error)
	UpdateCandidate(ctx context.Context, userID uuid.UUID, in usecase.CandidateInput) (profile.Candidate, error)
	OnboardCandidate(ctx context.Context, userID uuid.UUID, in usecase.CandidateInput) (profile.Candidate, error)

	GetAdmin(ctx context.Context, userID uuid.UUID) (profile.Admin, error)
	UpdateAdmin(ctx context.Context, userID uuid.UUID, in usecase.AdminInput) (profile.Admin, error)
	OnboardAdmin(ctx context.Context, userID uuid.UUID, in usecase.AdminInput) (profile.Admin, error)
}

// ProfileHandler serves /<role>/profile and /<role>/onboarding. The role
// gate in front of each group decides which of these a caller reaches.
type ProfileHandler struct {
	uc ProfileUsecase
}

type posterProfileRequest struct {
	CompanyName    *string `json:"company_name" validate:"omitempty,max=200"`
	CompanyWebsite *string `json:"company_website" validate:"omitempty,url"`
	Position       *string `json:"position" validate:"omitempty,max=120"`
}

type referrerProfileRequest struct {
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	JobTitle    *string `json:"job_title" validate:"omitempty,max=120"`
	WorkEmail   *string `json:"work_email" validate:"omitempty,email"`
	LinkedInURL *string `json:"linkedin_url" validate:"omitempty,url"`
}

type candidateProfileRequest struct {
	Headline        *string   `json:"headline" validate:"omitempty,max=200"`
	Bio             *string   `json:"bio" validate:"omitempty,max=4000"`
	ResumeURL       *string   `json:"resume_url" validate:"omitempty,url"`
	LinkedInURL     *string   `json:"linkedin_url" validate:"omitempty,url"`
	Skills          *[]string `json:"skills"`
	YearsExperience *int      `json:"years_experience" validate:"omitempty,min=0,max=80"`
}

type adminProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=120"`
}

func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (r posterProfileRequest) input() usecase.PosterInput {
	return usecase.PosterInput{CompanyName: r.CompanyName, CompanyWebsite: r.CompanyWebsite, Position: r.Position}
}

func (r referrerProfileRequest) input() usecase.ReferrerInput {
	return usecase.ReferrerInput{CompanyName: r.CompanyName, JobTitle: r.JobTitle, WorkEmail: r.WorkEmail, LinkedInURL: r.LinkedInURL}
}

func (r candidateProfileRequest) input() usecase.CandidateInput {
	return usecase.CandidateInput{
		Headline:        r.Headline,
		Bio:             r.Bio,
		ResumeURL:       r.ResumeURL,
		LinkedInURL:     r.LinkedInURL,
		Skills:          r.Skills,
		YearsExperience: r.YearsExperience,
	}
}

func (h *ProfileHandler) GetPoster(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetPoster(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPosterProfile(p))
}

func (h *ProfileHandler) UpdatePoster(c fiber.Ctx) error {
	return h.savePoster(c, h.uc.UpdatePoster)
}

func (h *ProfileHandler) OnboardPoster(c fiber.Ctx) error {
	return h.savePoster(c, h.uc.OnboardPoster)
}

func (h *ProfileHandler) savePoster(c fiber.Ctx, save func(context.Context, uuid.UUID, usecase.PosterInput) (profile.Poster, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req posterProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := save(c.Context(), userID, req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPosterProfile(p))
}

func (h *ProfileHandler) UploadPosterLogo(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	file, closeFn, err := openImage(c)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := h.uc.UploadPosterLogo(c.Context(), userID, file)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPosterProfile(p))
}

func (h *ProfileHandler) GetReferrer(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetReferrer(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferrerProfile(p))
}

func (h *ProfileHandler) UpdateReferrer(c fiber.Ctx) error {
	return h.saveReferrer(c, h.uc.UpdateReferrer)
}

func (h *ProfileHandler) OnboardReferrer(c fiber.Ctx) error {
	return h.saveReferrer(c, h.uc.OnboardReferrer)
}

func (h *ProfileHandler) saveReferrer(c fiber.Ctx, save func(context.Context, uuid.UUID, usecase.ReferrerInput) (profile.Referrer, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req referrerProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := save(c.Context(), userID, req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReferrerProfile(p))
}

func (h *ProfileHandler) GetCandidate(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetCandidate(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateProfile(p))
}

func (h *ProfileHandler) UpdateCandidate(c fiber.Ctx) error {
	return h.saveCandidate(c, h.uc.UpdateCandidate)
}

func (h *ProfileHandler) OnboardCandidate(c fiber.Ctx) error {
	return h.saveCandidate(c, h.uc.OnboardCandidate)
}

func (h *ProfileHandler) saveCandidate(c fiber.Ctx, save func(context.Context, uuid.UUID, usecase.CandidateInput) (profile.Candidate, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req candidateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := save(c.Context(), userID, req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateProfile(p))
}

func (h *ProfileHandler) GetAdmin(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.GetAdmin(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminProfile(p))
}

func (h *ProfileHandler) UpdateAdmin(c fiber.Ctx) error {
	return h.saveAdmin(c, h.uc.UpdateAdmin)
}

func (h *ProfileHandler) OnboardAdmin(c fiber.Ctx) error {
	return h.saveAdmin(c, h.uc.OnboardAdmin)
}

func (h *ProfileHandler) saveAdmin(c fiber.Ctx, save func(context.Context, uuid.UUID, usecase.AdminInput) (profile.Admin, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req adminProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := save(c.Context(), userID, usecase.AdminInput{DisplayName: req.DisplayName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminProfile(p))
}

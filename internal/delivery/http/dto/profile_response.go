package dto

import (
	"time"

	"referhub/internal/domain/profile"

	"github.com/google/uuid"
)

type PosterProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	CompanyName    string    `json:"company_name"`
	CompanyWebsite *string   `json:"company_website"`
	CompanyLogoURL *string   `json:"company_logo_url"`
	Position       string    `json:"position"`
	FirstLogin     bool      `json:"first_login"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPosterProfile(p profile.Poster) PosterProfileResponse {
	return PosterProfileResponse{
		UserID:         p.UserID,
		CompanyName:    p.CompanyName,
		CompanyWebsite: p.CompanyWebsite,
		CompanyLogoURL: p.CompanyLogoURL,
		Position:       p.Position,
		FirstLogin:     p.FirstLogin,
		UpdatedAt:      p.UpdatedAt,
	}
}

type ReferrerProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	CompanyName string    `json:"company_name"`
	JobTitle    string    `json:"job_title"`
	WorkEmail   string    `json:"work_email"`
	LinkedInURL *string   `json:"linkedin_url"`
	Verified    bool      `json:"verified"`
	FirstLogin  bool      `json:"first_login"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewReferrerProfile(p profile.Referrer) ReferrerProfileResponse {
	return ReferrerProfileResponse{
		UserID:      p.UserID,
		CompanyName: p.CompanyName,
		JobTitle:    p.JobTitle,
		WorkEmail:   p.WorkEmail,
		LinkedInURL: p.LinkedInURL,
		Verified:    p.Verified,
		FirstLogin:  p.FirstLogin,
		UpdatedAt:   p.UpdatedAt,
	}
}

type CandidateProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	Headline        string    `json:"headline"`
	Bio             *string   `json:"bio"`
	ResumeURL       string    `json:"resume_url"`
	LinkedInURL     *string   `json:"linkedin_url"`
	Skills          []string  `json:"skills"`
	YearsExperience int       `json:"years_experience"`
	FirstLogin      bool      `json:"first_login"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewCandidateProfile(p profile.Candidate) CandidateProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return CandidateProfileResponse{
		UserID:          p.UserID,
		Headline:        p.Headline,
		Bio:             p.Bio,
		ResumeURL:       p.ResumeURL,
		LinkedInURL:     p.LinkedInURL,
		Skills:          skills,
		YearsExperience: p.YearsExperience,
		FirstLogin:      p.FirstLogin,
		UpdatedAt:       p.UpdatedAt,
	}
}

type AdminProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	FirstLogin  bool      `json:"first_login"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewAdminProfile(p profile.Admin) AdminProfileResponse {
	return AdminProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		FirstLogin:  p.FirstLogin,
		UpdatedAt:   p.UpdatedAt,
	}
}

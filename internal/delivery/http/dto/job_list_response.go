package dto

import (
	"time"

	"referhub/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID             uuid.UUID          `json:"id"`
	PosterID       uuid.UUID          `json:"poster_id"`
	Title          string             `json:"title"`
	CompanyName    string             `json:"company_name"`
	Location       string             `json:"location"`
	EmploymentType job.EmploymentType `json:"employment_type"`
	Description    string             `json:"description"`
	SalaryRange    *string            `json:"salary_range"`
	Skills         []string           `json:"skills"`
	Status         job.Status         `json:"status"`
	PostedDate     string             `json:"posted_date"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             j.ID,
		PosterID:       j.PosterID,
		Title:          j.Title,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Description:    j.Description,
		SalaryRange:    j.SalaryRange,
		Skills:         skills,
		Status:         j.Status,
		PostedDate:     j.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      j.UpdatedAt,
	}
}

func NewJobList(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type EmploymentType string

const (
	FullTime   EmploymentType = "full_time"
	PartTime   EmploymentType = "part_time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

type Job struct {
	ID             uuid.UUID
	PosterID       uuid.UUID
	Title          string
	CompanyName    string
	Location       string
	EmploymentType EmploymentType
	Description    string
	SalaryRange    *string
	Skills         []string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Draft is a job extracted from an external posting, not yet persisted.
type Draft struct {
	Title          string   `json:"title"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Description    string   `json:"description"`
	SalaryRange    *string  `json:"salary_range"`
	Skills         []string `json:"skills"`
	SourceURL      string   `json:"source_url"`
}

package profile

import (
	"time"

	"github.com/google/uuid"
)

type Poster struct {
	UserID         uuid.UUID
	CompanyName    string
	CompanyWebsite *string
	CompanyLogoURL *string
	Position       string
	FirstLogin     bool
	UpdatedAt      time.Time
}

func (p Poster) Complete() bool {
	return p.CompanyName != "" && p.Position != ""
}

type Referrer struct {
	UserID      uuid.UUID
	CompanyName string
	JobTitle    string
	WorkEmail   string
	LinkedInURL *string
	Verified    bool
	FirstLogin  bool
	UpdatedAt   time.Time
}

func (p Referrer) Complete() bool {
	return p.CompanyName != "" && p.JobTitle != "" && p.WorkEmail != ""
}

type Candidate struct {
	UserID          uuid.UUID
	Headline        string
	Bio             *string
	ResumeURL       string
	LinkedInURL     *string
	Skills          []string
	YearsExperience int
	FirstLogin      bool
	UpdatedAt       time.Time
}

func (p Candidate) Complete() bool {
	return p.Headline != "" && p.ResumeURL != "" && p.YearsExperience >= 0
}

type Admin struct {
	UserID      uuid.UUID
	DisplayName string
	FirstLogin  bool
	UpdatedAt   time.Time
}

func (p Admin) Complete() bool {
	return p.DisplayName != ""
}

package seeder

import (
	"context"
	"log"
	"strings"

	"referhub/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPosterEmail    = "demo-poster@referhub.local"
	DemoPosterPassword = "demo-password"
	demoCompany        = "Referhub Labs"
)

// DemoSeeder loads an onboarded poster and a handful of open jobs for local
// development. IDs are derived from names so reruns insert nothing new.
type DemoSeeder struct {
	Logger *log.Logger
}

func (DemoSeeder) Name() string { return "demo" }

type demoJob struct {
	Title          string
	Location       string
	EmploymentType string
	Description    string
	Skills         []string
}

var demoJobs = []demoJob{
	{
		Title:          "Backend Engineer (Go)",
		Location:       "Jakarta, ID",
		EmploymentType: "full_time",
		Description:    "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
		Skills:         []string{"Go", "PostgreSQL", "REST"},
	},
	{
		Title:          "Fullstack Engineer (React + Go)",
		Location:       "Bandung, ID",
		EmploymentType: "full_time",
		Description:    "Develop web apps with React and TypeScript and backend services in Go.",
		Skills:         []string{"React", "TypeScript", "Go"},
	},
	{
		Title:          "DevOps Engineer",
		Location:       "Remote",
		EmploymentType: "contract",
		Description:    "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure for production workloads.",
		Skills:         []string{"Docker", "Kubernetes", "CI/CD"},
	},
	{
		Title:          "QA Automation Intern",
		Location:       "Remote",
		EmploymentType: "internship",
		Description:    "Write automated tests for APIs and web apps and wire them into CI pipelines.",
		Skills:         []string{"Testing", "CI/CD"},
	},
}

func demoID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("referhub:demo:"+strings.ToLower(name)))
}

func (s DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "poster_id", "title", "company_name", "location",
		"employment_type", "description", "skills", "status",
	); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPosterPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	posterID := demoID(DemoPosterEmail)
	if _, err := db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, 'Demo Poster', 'poster')
		ON CONFLICT DO NOTHING`,
		posterID, DemoPosterEmail, string(hash),
	); err != nil {
		return err
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO poster_profiles (user_id, company_name, position, first_login)
		VALUES ($1, $2, 'Hiring Manager', false)
		ON CONFLICT (user_id) DO NOTHING`,
		posterID, demoCompany,
	); err != nil {
		return err
	}

	inserted := 0
	for _, it := range demoJobs {
		n, err := db.Exec(ctx,
			`INSERT INTO jobs (id, poster_id, title, company_name, location, employment_type, description, skills, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'open')
			ON CONFLICT (id) DO NOTHING`,
			demoID(it.Title), posterID, it.Title, demoCompany, it.Location, it.EmploymentType, it.Description, it.Skills,
		)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Printf("[Seeder] demo job skipped | title=%q err=%v", it.Title, err)
			}
			continue
		}
		inserted += int(n)
	}

	if s.Logger != nil {
		s.Logger.Printf("[Seeder] demo data ready | poster=%s jobs_inserted=%d", DemoPosterEmail, inserted)
	}
	return nil
}

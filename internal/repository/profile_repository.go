package repository

import (
	"context"
	"errors"

	"referhub/internal/database"
	"referhub/internal/domain/access"
	"referhub/internal/domain/profile"
	"referhub/internal/domain/user"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	GetPoster(ctx context.Context, userID uuid.UUID) (profile.Poster, error)
	SavePoster(ctx context.Context, p profile.Poster) error
	SetPosterLogo(ctx context.Context, userID uuid.UUID, url string) error

	GetReferrer(ctx context.Context, userID uuid.UUID) (profile.Referrer, error)
	SaveReferrer(ctx context.Context, p profile.Referrer) error
	SetReferrerVerified(ctx context.Context, userID uuid.UUID, verified bool) error

	GetCandidate(ctx context.Context, userID uuid.UUID) (profile.Candidate, error)
	SaveCandidate(ctx context.Context, p profile.Candidate) error

	GetAdmin(ctx context.Context, userID uuid.UUID) (profile.Admin, error)
	SaveAdmin(ctx context.Context, p profile.Admin) error
}

// SessionRepository loads the fields the access gate decides on.
type SessionRepository interface {
	LoadSession(ctx context.Context, userID uuid.UUID) (access.Session, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) LoadSession(ctx context.Context, userID uuid.UUID) (access.Session, error) {
	var (
		s    access.Session
		role string
	)
	err := r.db.QueryRow(ctx,
		`SELECT u.id, u.role, u.is_banned,
		        COALESCE(CASE u.role
		            WHEN 'poster' THEN pp.first_login
		            WHEN 'referrer' THEN rp.first_login
		            WHEN 'candidate' THEN cp.first_login
		            WHEN 'admin' THEN ap.first_login
		        END, true)
		 FROM users u
		 LEFT JOIN poster_profiles pp ON pp.user_id = u.id
		 LEFT JOIN referrer_profiles rp ON rp.user_id = u.id
		 LEFT JOIN candidate_profiles cp ON cp.user_id = u.id
		 LEFT JOIN admin_profiles ap ON ap.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	).Scan(&s.UserID, &role, &s.Banned, &s.FirstLogin)
	if err != nil {
		if database.IsNoRows(err) {
			return access.Session{}, user.ErrNotFound
		}
		return access.Session{}, err
	}
	s.Role = user.Role(role)
	return s, nil
}

func (r *PostgresProfileRepository) GetPoster(ctx context.Context, userID uuid.UUID) (profile.Poster, error) {
	var p profile.Poster
	err := r.db.QueryRow(ctx,
		`SELECT user_id, company_name, company_website, company_logo_url, position, first_login, updated_at
		 FROM poster_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.CompanyName, &p.CompanyWebsite, &p.CompanyLogoURL, &p.Position, &p.FirstLogin, &p.UpdatedAt)
	if err != nil {
		return profile.Poster{}, profileNotFound(err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) SavePoster(ctx context.Context, p profile.Poster) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO poster_profiles (user_id, company_name, company_website, company_logo_url, position, first_login)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   company_name = EXCLUDED.company_name,
		   company_website = EXCLUDED.company_website,
		   company_logo_url = EXCLUDED.company_logo_url,
		   position = EXCLUDED.position,
		   first_login = EXCLUDED.first_login,
		   updated_at = now()`,
		p.UserID, p.CompanyName, p.CompanyWebsite, p.CompanyLogoURL, p.Position, p.FirstLogin,
	)
	return err
}

func (r *PostgresProfileRepository) SetPosterLogo(ctx context.Context, userID uuid.UUID, url string) error {
	return r.execOne(ctx, `UPDATE poster_profiles SET company_logo_url = $2, updated_at = now() WHERE user_id = $1`, userID, url)
}

func (r *PostgresProfileRepository) GetReferrer(ctx context.Context, userID uuid.UUID) (profile.Referrer, error) {
	var p profile.Referrer
	err := r.db.QueryRow(ctx,
		`SELECT user_id, company_name, job_title, work_email, linkedin_url, verified, first_login, updated_at
		 FROM referrer_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.CompanyName, &p.JobTitle, &p.WorkEmail, &p.LinkedInURL, &p.Verified, &p.FirstLogin, &p.UpdatedAt)
	if err != nil {
		return profile.Referrer{}, profileNotFound(err)
	}
	return p, nil
}

// SaveReferrer can clear verified but never set it; granting belongs to
// admins. The stored flag is ANDed with p.Verified so a concurrent revoke
// is not overwritten.
func (r *PostgresProfileRepository) SaveReferrer(ctx context.Context, p profile.Referrer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO referrer_profiles (user_id, company_name, job_title, work_email, linkedin_url, first_login, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, false)
		 ON CONFLICT (user_id) DO UPDATE SET
		   verified = referrer_profiles.verified AND $7,
		   company_name = EXCLUDED.company_name,
		   job_title = EXCLUDED.job_title,
		   work_email = EXCLUDED.work_email,
		   linkedin_url = EXCLUDED.linkedin_url,
		   first_login = EXCLUDED.first_login,
		   updated_at = now()`,
		p.UserID, p.CompanyName, p.JobTitle, p.WorkEmail, p.LinkedInURL, p.FirstLogin, p.Verified,
	)
	return err
}

func (r *PostgresProfileRepository) SetReferrerVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	return r.execOne(ctx, `UPDATE referrer_profiles SET verified = $2, updated_at = now() WHERE user_id = $1`, userID, verified)
}

func (r *PostgresProfileRepository) GetCandidate(ctx context.Context, userID uuid.UUID) (profile.Candidate, error) {
	var p profile.Candidate
	err := r.db.QueryRow(ctx,
		`SELECT user_id, headline, bio, resume_url, linkedin_url, skills, years_experience, first_login, updated_at
		 FROM candidate_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Headline, &p.Bio, &p.ResumeURL, &p.LinkedInURL, &p.Skills, &p.YearsExperience, &p.FirstLogin, &p.UpdatedAt)
	if err != nil {
		return profile.Candidate{}, profileNotFound(err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (r *PostgresProfileRepository) SaveCandidate(ctx context.Context, p profile.Candidate) error {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidate_profiles (user_id, headline, bio, resume_url, linkedin_url, skills, years_experience, first_login)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		   headline = EXCLUDED.headline,
		   bio = EXCLUDED.bio,
		   resume_url = EXCLUDED.resume_url,
		   linkedin_url = EXCLUDED.linkedin_url,
		   skills = EXCLUDED.skills,
		   years_experience = EXCLUDED.years_experience,
		   first_login = EXCLUDED.first_login,
		   updated_at = now()`,
		p.UserID, p.Headline, p.Bio, p.ResumeURL, p.LinkedInURL, skills, p.YearsExperience, p.FirstLogin,
	)
	return err
}

func (r *PostgresProfileRepository) GetAdmin(ctx context.Context, userID uuid.UUID) (profile.Admin, error) {
	var p profile.Admin
	err := r.db.QueryRow(ctx,
		`SELECT user_id, display_name, first_login, updated_at FROM admin_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.DisplayName, &p.FirstLogin, &p.UpdatedAt)
	if err != nil {
		return profile.Admin{}, profileNotFound(err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) SaveAdmin(ctx context.Context, p profile.Admin) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_profiles (user_id, display_name, first_login)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET
		   display_name = EXCLUDED.display_name,
		   first_login = EXCLUDED.first_login,
		   updated_at = now()`,
		p.UserID, p.DisplayName, p.FirstLogin,
	)
	return err
}

func (r *PostgresProfileRepository) execOne(ctx context.Context, query string, args ...any) error {
	n, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func profileNotFound(err error) error {
	if database.IsNoRows(err) {
		return ErrProfileNotFound
	}
	return err
}

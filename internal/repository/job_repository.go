package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referhub/internal/database"
	"referhub/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobFilter struct {
	// Terms match title or description; any one term is enough.
	Terms    []string
	Location string
	Company  string
	Skill    string
	// OpenOnly hides closed jobs; the public listing always sets it.
	OpenOnly bool
	PosterID *uuid.UUID
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	Update(ctx context.Context, j job.Job) error
	SetStatus(ctx context.Context, id uuid.UUID, status job.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f JobFilter) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, poster_id, title, company_name, location, employment_type, description, salary_range, skills, status, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, poster_id, title, company_name, location, employment_type, description, salary_range, skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.PosterID, j.Title, j.CompanyName, j.Location, string(j.EmploymentType), j.Description, j.SalaryRange, nonNilStrings(j.Skills), string(j.Status),
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET title = $2, company_name = $3, location = $4, employment_type = $5,
		   description = $6, salary_range = $7, skills = $8, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.CompanyName, j.Location, string(j.EmploymentType), j.Description, j.SalaryRange, nonNilStrings(j.Skills),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobFilter) ([]job.Job, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 6)
	args := make([]any, 0, 8)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.OpenOnly {
		add("status = $%d", string(job.StatusOpen))
	}
	if f.PosterID != nil {
		add("poster_id = $%d", *f.PosterID)
	}
	if len(f.Terms) > 0 {
		terms := make([]string, 0, len(f.Terms))
		for _, t := range f.Terms {
			args = append(args, "%"+escapeLike(t)+"%")
			n := len(args)
			terms = append(terms, fmt.Sprintf("%s LIKE $%d ESCAPE '\\' OR %s LIKE $%d ESCAPE '\\'",
				normalizedColumn("title"), n, normalizedColumn("description"), n))
		}
		where = append(where, "("+strings.Join(terms, " OR ")+")")
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		add("lower(location) LIKE $%d ESCAPE '\\'", "%"+escapeLike(strings.ToLower(loc))+"%")
	}
	if c := strings.TrimSpace(f.Company); c != "" {
		add("lower(company_name) LIKE $%d ESCAPE '\\'", "%"+escapeLike(strings.ToLower(c))+"%")
	}
	if s := strings.TrimSpace(f.Skill); s != "" {
		add("EXISTS (SELECT 1 FROM unnest(skills) AS s WHERE lower(s) = $%d)", strings.ToLower(s))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizedColumn mirrors search.Normalize in SQL: lowercase, punctuation
// dropped, whitespace collapsed.
func normalizedColumn(col string) string {
	return `regexp_replace(regexp_replace(lower(` + col + `), '[^[:alnum:][:space:]]', '', 'g'), '[[:space:]]+', ' ', 'g')`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j              job.Job
		employmentType string
		status         string
	)
	err := row.Scan(&j.ID, &j.PosterID, &j.Title, &j.CompanyName, &j.Location, &employmentType,
		&j.Description, &j.SalaryRange, &j.Skills, &status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return job.Job{}, err
	}
	j.EmploymentType = job.EmploymentType(employmentType)
	j.Status = job.Status(status)
	if j.Skills == nil {
		j.Skills = []string{}
	}
	return j, nil
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referhub/internal/database"
	"referhub/internal/domain/referral"

	"github.com/google/uuid"
)

var (
	ErrReferralNotFound = errors.New("referral not found")
	ErrReferralExists   = errors.New("referral already requested")
	// ErrReferralStale means the row changed between read and write: another
	// referrer claimed it or the status moved on.
	ErrReferralStale = errors.New("referral changed concurrently")
)

type ReferralInboxFilter struct {
	ReferrerID  uuid.UUID
	CompanyName string
	Status      *referral.Status
	Limit       int
	Offset      int
}

type ReferralRepository interface {
	Create(ctx context.Context, r referral.Request) error
	GetView(ctx context.Context, id uuid.UUID) (referral.View, error)
	// Transition moves a request from one status to another. When claimant
	// is set the row must be unclaimed or already claimed by that user, and
	// it ends up claimed by them.
	Transition(ctx context.Context, id uuid.UUID, from, to referral.Status, claimant *uuid.UUID) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]referral.View, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]referral.View, error)
	ListInbox(ctx context.Context, f ReferralInboxFilter) ([]referral.View, error)
}

type PostgresReferralRepository struct {
	db database.DB
}

func NewPostgresReferralRepository(db database.DB) *PostgresReferralRepository {
	return &PostgresReferralRepository{db: db}
}

const referralViewSelect = `SELECT r.id, r.job_id, r.candidate_id, r.referrer_id, r.pitch, r.status, r.created_at, r.updated_at,
       j.title, j.company_name, j.poster_id, c.full_name, c.email, ref.full_name, ref.email
FROM referral_requests r
JOIN jobs j ON j.id = r.job_id
JOIN users c ON c.id = r.candidate_id
LEFT JOIN users ref ON ref.id = r.referrer_id`

func (r *PostgresReferralRepository) Create(ctx context.Context, req referral.Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO referral_requests (id, job_id, candidate_id, pitch, status) VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.JobID, req.CandidateID, req.Pitch, string(req.Status),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrReferralExists
		}
		if database.IsForeignKeyViolation(err) {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresReferralRepository) GetView(ctx context.Context, id uuid.UUID) (referral.View, error) {
	v, err := scanReferralView(r.db.QueryRow(ctx, referralViewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return referral.View{}, ErrReferralNotFound
		}
		return referral.View{}, err
	}
	return v, nil
}

func (r *PostgresReferralRepository) Transition(ctx context.Context, id uuid.UUID, from, to referral.Status, claimant *uuid.UUID) error {
	var (
		n   int64
		err error
	)
	if claimant != nil {
		n, err = r.db.Exec(ctx,
			`UPDATE referral_requests SET status = $3, referrer_id = $4, updated_at = now()
			 WHERE id = $1 AND status = $2 AND (referrer_id IS NULL OR referrer_id = $4)`,
			id, string(from), string(to), *claimant,
		)
	} else {
		n, err = r.db.Exec(ctx,
			`UPDATE referral_requests SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
			id, string(from), string(to),
		)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReferralStale
	}
	return nil
}

func (r *PostgresReferralRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]referral.View, error) {
	return r.list(ctx, referralViewSelect+` WHERE r.candidate_id = $1 ORDER BY r.created_at DESC`, candidateID)
}

func (r *PostgresReferralRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]referral.View, error) {
	return r.list(ctx, referralViewSelect+` WHERE r.job_id = $1 ORDER BY r.created_at DESC`, jobID)
}

func (r *PostgresReferralRepository) ListInbox(ctx context.Context, f ReferralInboxFilter) ([]referral.View, error) {
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

	args := []any{strings.ToLower(strings.TrimSpace(f.CompanyName)), f.ReferrerID}
	query := referralViewSelect + ` WHERE lower(j.company_name) = $1 AND (r.referrer_id IS NULL OR r.referrer_id = $2)`
	if f.Status != nil {
		args = append(args, string(*f.Status))
		query += fmt.Sprintf(` AND r.status = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.list(ctx, query, args...)
}

func (r *PostgresReferralRepository) list(ctx context.Context, query string, args ...any) ([]referral.View, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]referral.View, 0)
	for rows.Next() {
		v, err := scanReferralView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanReferralView(row database.Row) (referral.View, error) {
	var (
		v      referral.View
		status string
	)
	err := row.Scan(&v.ID, &v.JobID, &v.CandidateID, &v.ReferrerID, &v.Pitch, &status, &v.CreatedAt, &v.UpdatedAt,
		&v.JobTitle, &v.CompanyName, &v.PosterID, &v.CandidateName, &v.CandidateEmail, &v.ReferrerName, &v.ReferrerEmail)
	if err != nil {
		return referral.View{}, err
	}
	v.Status = referral.Status(status)
	return v, nil
}

package repository

import (
	"context"

	"referhub/internal/database"
)

type Stats struct {
	UsersByRole       map[string]int `json:"users_by_role"`
	JobsByStatus      map[string]int `json:"jobs_by_status"`
	ReferralsByStatus map[string]int `json:"referrals_by_status"`
	BannedUsers       int            `json:"banned_users"`
}

type StatsRepository interface {
	Stats(ctx context.Context) (Stats, error)
}

type PostgresStatsRepository struct {
	db database.DB
}

func NewPostgresStatsRepository(db database.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) Stats(ctx context.Context) (Stats, error) {
	var (
		s   Stats
		err error
	)
	if s.UsersByRole, err = r.countBy(ctx, `SELECT role, count(*) FROM users GROUP BY role`); err != nil {
		return Stats{}, err
	}
	if s.JobsByStatus, err = r.countBy(ctx, `SELECT status, count(*) FROM jobs GROUP BY status`); err != nil {
		return Stats{}, err
	}
	if s.ReferralsByStatus, err = r.countBy(ctx, `SELECT status, count(*) FROM referral_requests GROUP BY status`); err != nil {
		return Stats{}, err
	}
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE is_banned`).Scan(&s.BannedUsers); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func (r *PostgresStatsRepository) countBy(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			k string
			n int
		)
		if err := rows.Scan(&k, &n); err != nil {
			return nil, err
		}
		out[k] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

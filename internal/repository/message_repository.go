package repository

import (
	"context"
	"time"

	"referhub/internal/database"
	"referhub/internal/domain/referral"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m referral.Message) (referral.Message, error)
	// List returns up to limit messages older than before (all when nil),
	// oldest first.
	List(ctx context.Context, referralID uuid.UUID, limit int, before *time.Time) ([]referral.Message, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m referral.Message) (referral.Message, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO referral_messages (id, referral_id, sender_id, body) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		m.ID, m.ReferralID, m.SenderID, m.Body,
	).Scan(&m.CreatedAt)
	if err != nil {
		return referral.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) List(ctx context.Context, referralID uuid.UUID, limit int, before *time.Time) ([]referral.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	var (
		rows database.Rows
		err  error
	)
	if before != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, referral_id, sender_id, body, created_at FROM referral_messages
			 WHERE referral_id = $1 AND created_at < $2 ORDER BY created_at DESC LIMIT $3`,
			referralID, *before, limit,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, referral_id, sender_id, body, created_at FROM referral_messages
			 WHERE referral_id = $1 ORDER BY created_at DESC LIMIT $2`,
			referralID, limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]referral.Message, 0)
	for rows.Next() {
		var m referral.Message
		if err := rows.Scan(&m.ID, &m.ReferralID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

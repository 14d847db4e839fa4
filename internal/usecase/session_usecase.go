package usecase

import (
	"context"
	"errors"

	"referhub/internal/domain/access"
	"referhub/internal/domain/user"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

type SessionUsecase interface {
	Load(ctx context.Context, userID uuid.UUID) (access.Session, error)
}

type Sessions struct {
	repo repository.SessionRepository
}

func NewSessionUsecase(repo repository.SessionRepository) *Sessions {
	return &Sessions{repo: repo}
}

// Load reads role, ban and onboarding state from the database so changes
// apply without waiting for a new token.
func (u *Sessions) Load(ctx context.Context, userID uuid.UUID) (access.Session, error) {
	s, err := u.repo.LoadSession(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return access.Session{}, ErrUserNotFound
		}
		return access.Session{}, ErrInternal
	}
	return s, nil
}

package user

import (
	"context"
	"errors"
	"strings"

	"referhub/internal/domain/user"
	ucauth "referhub/internal/usecase/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

const maxFullNameLen = 120

type UpdateMeInput struct {
	FullName *string
	Password *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, mapLookupErr(err)
	}
	return ucauth.Sanitize(usr), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, mapLookupErr(err)
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" || len(name) > maxFullNameLen {
			return user.User{}, ErrInvalidInput
		}
		usr.FullName = name
	}

	if in.Password != nil {
		if !ucauth.IsValidPassword(*in.Password) {
			return user.User{}, ErrInvalidInput
		}
		hash, err := ucauth.HashPassword(*in.Password)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, usr); err != nil {
		return user.User{}, mapLookupErr(err)
	}

	return s.GetMe(ctx, userID)
}

func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, url string) (user.User, error) {
	if err := s.users.SetAvatar(ctx, userID, url); err != nil {
		return user.User{}, mapLookupErr(err)
	}
	return s.GetMe(ctx, userID)
}

func mapLookupErr(err error) error {
	if errors.Is(err, user.ErrNotFound) {
		return ErrNotFound
	}
	return ErrInternal
}

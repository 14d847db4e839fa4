package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type ListFilter struct {
	Role   *Role
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	// CreateWithProfile inserts the user and an empty profile row for its
	// role in one transaction.
	CreateWithProfile(ctx context.Context, u User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, u User) error
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	ChangeRole(ctx context.Context, id uuid.UUID, role Role) error
	List(ctx context.Context, f ListFilter) ([]User, error)
}

package usecase

import (
	"context"
	"errors"
	"io"
	"log"

	"referhub/internal/domain/user"
	"referhub/internal/infrastructure/imagehost"
	ucuser "referhub/internal/usecase/user"

	"github.com/google/uuid"
)

const avatarFolder = "avatars"

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (user.User, error)
}

type User struct {
	svc    *ucuser.Service
	images imagehost.Uploader
	logger *log.Logger
}

func NewUserUsecase(users user.Repository, images imagehost.Uploader, logger *log.Logger) *User {
	return &User{svc: ucuser.NewService(users), images: images, logger: logger}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	return u.svc.UpdateMe(ctx, userID, in)
}

func (u *User) UploadAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (user.User, error) {
	url, err := uploadImage(ctx, u.images, r, avatarFolder, userID.String())
	if err != nil {
		if u.logger != nil && !errors.Is(err, ErrUnavailable) {
			u.logger.Printf("[User] avatar upload failed | user_id=%s err=%v", userID, err)
		}
		return user.User{}, err
	}
	return u.svc.SetAvatar(ctx, userID, url)
}

func uploadImage(ctx context.Context, images imagehost.Uploader, r io.Reader, folder, publicID string) (string, error) {
	if images == nil {
		return "", ErrUnavailable
	}
	url, err := images.Upload(ctx, r, folder, publicID)
	if err != nil {
		if errors.Is(err, imagehost.ErrUnavailable) {
			return "", ErrUnavailable
		}
		return "", ErrInternal
	}
	return url, nil
}

package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"referhub/internal/domain/user"
	"referhub/internal/repository"
	ucauth "referhub/internal/usecase/auth"

	"github.com/google/uuid"
)

const statsCacheTTL = 60 * time.Second

type AdminUsecase interface {
	ListUsers(ctx context.Context, role *user.Role, query string, limit, offset int) ([]user.User, error)
	SetBanned(ctx context.Context, adminID, targetID uuid.UUID, banned bool) (user.User, error)
	ChangeRole(ctx context.Context, adminID, targetID uuid.UUID, role user.Role) (user.User, error)
	VerifyReferrer(ctx context.Context, referrerID uuid.UUID) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
	Stats(ctx context.Context) (repository.Stats, error)
}

type Admin struct {
	users    user.Repository
	profiles repository.ProfileRepository
	jobs     repository.JobRepository
	stats    repository.StatsRepository
	cache    Cache
	logger   *log.Logger
}

func NewAdminUsecase(users user.Repository, profiles repository.ProfileRepository, jobs repository.JobRepository, stats repository.StatsRepository, cache Cache, logger *log.Logger) *Admin {
	return &Admin{users: users, profiles: profiles, jobs: jobs, stats: stats, cache: cache, logger: logger}
}

func (u *Admin) ListUsers(ctx context.Context, role *user.Role, query string, limit, offset int) ([]user.User, error) {
	if role != nil && !role.Valid() {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.users.List(ctx, user.ListFilter{Role: role, Query: strings.TrimSpace(query), Limit: limit, Offset: offset})
	if err != nil {
		return nil, ErrInternal
	}
	for i := range items {
		items[i] = ucauth.Sanitize(items[i])
	}
	return items, nil
}

// SetBanned refuses to touch the caller's own account or another admin.
func (u *Admin) SetBanned(ctx context.Context, adminID, targetID uuid.UUID, banned bool) (user.User, error) {
	if adminID == targetID {
		return user.User{}, ErrForbidden
	}
	target, err := u.lookup(ctx, targetID)
	if err != nil {
		return user.User{}, err
	}
	if target.Role == user.RoleAdmin {
		return user.User{}, ErrProtectedAccount
	}
	if target.Banned != banned {
		if err := u.users.SetBanned(ctx, targetID, banned); err != nil {
			return user.User{}, ErrInternal
		}
		u.invalidateStats(ctx)
		if u.logger != nil {
			u.logger.Printf("[Admin] ban changed | admin_id=%s user_id=%s banned=%t", adminID, targetID, banned)
		}
	}
	return u.lookup(ctx, targetID)
}

func (u *Admin) ChangeRole(ctx context.Context, adminID, targetID uuid.UUID, role user.Role) (user.User, error) {
	if !role.Valid() {
		return user.User{}, ErrInvalidInput
	}
	if adminID == targetID {
		return user.User{}, ErrForbidden
	}
	target, err := u.lookup(ctx, targetID)
	if err != nil {
		return user.User{}, err
	}
	if target.Role != role {
		if err := u.users.ChangeRole(ctx, targetID, role); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return user.User{}, ErrUserNotFound
			}
			return user.User{}, ErrInternal
		}
		u.invalidateStats(ctx)
		if u.logger != nil {
			u.logger.Printf("[Admin] role changed | admin_id=%s user_id=%s from=%s to=%s", adminID, targetID, target.Role, role)
		}
	}
	return u.lookup(ctx, targetID)
}

func (u *Admin) VerifyReferrer(ctx context.Context, referrerID uuid.UUID) error {
	target, err := u.lookup(ctx, referrerID)
	if err != nil {
		return err
	}
	if target.Role != user.RoleReferrer {
		return ErrInvalidInput
	}
	if err := u.profiles.SetReferrerVerified(ctx, referrerID, true); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Admin) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	invalidateJobCaches(ctx, u.cache, u.logger)
	return nil
}

func (u *Admin) Stats(ctx context.Context) (repository.Stats, error) {
	if u.cache != nil {
		var cached repository.Stats
		if hit, err := u.cache.GetJSON(ctx, adminStatsKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	s, err := u.stats.Stats(ctx)
	if err != nil {
		return repository.Stats{}, ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, adminStatsKey, s, statsCacheTTL)
	}
	return s, nil
}

func (u *Admin) lookup(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return ucauth.Sanitize(usr), nil
}

func (u *Admin) invalidateStats(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.Delete(ctx, adminStatsKey)
	}
}

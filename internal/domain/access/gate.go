// Package access resolves where a session belongs: the onboarding flow for
// its role, its role dashboard, or nowhere at all.
package access

import (
	"referhub/internal/domain/user"

	"github.com/google/uuid"
)

const (
	PathLogin  = "/login"
	PathBanned = "/banned"
)

type Session struct {
	UserID     uuid.UUID
	Role       user.Role
	FirstLogin bool
	Banned     bool
}

func (s Session) HasRole(roles ...user.Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func OnboardingPath(r user.Role) string {
	return "/onboarding/" + string(r)
}

func DashboardPath(r user.Role) string {
	return "/" + string(r)
}

// Resolve returns the landing path for a session. The checks run in a fixed
// order: ban, role, onboarding.
func Resolve(s Session) string {
	if s.UserID == uuid.Nil {
		return PathLogin
	}
	if s.Banned {
		return PathBanned
	}
	if !s.Role.Valid() {
		return PathLogin
	}
	if s.FirstLogin {
		return OnboardingPath(s.Role)
	}
	return DashboardPath(s.Role)
}

// Onboarded reports whether the session may enter its dashboard area.
func Onboarded(s Session) bool {
	return Resolve(s) == DashboardPath(s.Role)
}

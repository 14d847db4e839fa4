package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePoster    Role = "poster"
	RoleReferrer  Role = "referrer"
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

var Roles = []Role{RolePoster, RoleReferrer, RoleCandidate, RoleAdmin}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
// Admin accounts come from the seeder or a promotion.
func (r Role) SelfRegistrable() bool {
	return r == RolePoster || r == RoleReferrer || r == RoleCandidate
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	AvatarURL    *string
	Banned       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

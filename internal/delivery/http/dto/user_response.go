package dto

import (
	"time"

	"referhub/internal/domain/access"
	"referhub/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      user.Role `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	Banned    bool      `json:"banned"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		Banned:    u.Banned,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserList(items []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Redirect     string        `json:"redirect,omitempty"`
}

type SessionResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Role       user.Role `json:"role"`
	FirstLogin bool      `json:"first_login"`
	Redirect   string    `json:"redirect"`
}

func NewSessionResponse(s access.Session) SessionResponse {
	return SessionResponse{
		UserID:     s.UserID,
		Role:       s.Role,
		FirstLogin: s.FirstLogin,
		Redirect:   access.Resolve(s),
	}
}

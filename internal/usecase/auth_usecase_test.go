package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"referhub/internal/domain/user"
	"referhub/internal/pkg/jwt"
	ucauth "referhub/internal/usecase/auth"
)

func newTestAuth() (*Auth, *fakeUsers, *jwt.HMACService) {
	users := newFakeUsers()
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(users, svc), users, svc
}

func TestAuth_RegisterIssuesRoleToken(t *testing.T) {
	uc, _, svc := newTestAuth()
	usr, access, refresh, err := uc.Register(context.Background(), ucauth.RegisterInput{
		Email:    "  Jane@Example.COM ",
		Password: "correct-horse",
		FullName: "Jane",
		Role:     user.RoleCandidate,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.Email != "jane@example.com" {
		t.Fatalf("expected normalised email, got %q", usr.Email)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}
	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != string(user.RoleCandidate) || claims.UserID != usr.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuth_RegisterRejects(t *testing.T) {
	uc, _, _ := newTestAuth()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ucauth.RegisterInput
		want error
	}{
		{"short password", ucauth.RegisterInput{Email: "a@b.test", Password: "short", Role: user.RolePoster}, ucauth.ErrInvalidInput},
		{"bad email", ucauth.RegisterInput{Email: "not-an-email", Password: "long-enough", Role: user.RolePoster}, ucauth.ErrInvalidInput},
		{"admin role", ucauth.RegisterInput{Email: "a@b.test", Password: "long-enough", Role: user.RoleAdmin}, ucauth.ErrInvalidInput},
		{"unknown role", ucauth.RegisterInput{Email: "a@b.test", Password: "long-enough", Role: "ceo"}, ucauth.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := uc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	uc, _, _ := newTestAuth()
	ctx := context.Background()
	in := ucauth.RegisterInput{Email: "dup@b.test", Password: "long-enough", Role: user.RoleReferrer}
	if _, _, _, err := uc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	in.Email = "DUP@b.test"
	if _, _, _, err := uc.Register(ctx, in); !errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestAuth_LoginBannedAndWrongPassword(t *testing.T) {
	uc, users, _ := newTestAuth()
	ctx := context.Background()
	usr, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "p@b.test", Password: "long-enough", Role: user.RolePoster})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "p@b.test", Password: "wrong-password"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "nobody@b.test", Password: "long-enough"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}

	_ = users.SetBanned(ctx, usr.ID, true)
	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "p@b.test", Password: "long-enough"}); !errors.Is(err, ucauth.ErrBanned) {
		t.Fatalf("expected banned, got %v", err)
	}
}

func TestAuth_RefreshPicksUpRoleChange(t *testing.T) {
	uc, users, svc := newTestAuth()
	ctx := context.Background()
	usr, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{Email: "r@b.test", Password: "long-enough", Role: user.RoleCandidate})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("access token must not refresh, got %v", err)
	}

	_ = users.ChangeRole(ctx, usr.ID, user.RoleReferrer)
	newAccess, newRefresh, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newRefresh == "" {
		t.Fatalf("expected rotated refresh token")
	}
	claims, err := svc.ValidateToken(newAccess)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Role != string(user.RoleReferrer) {
		t.Fatalf("expected refreshed role, got %q", claims.Role)
	}

	_ = users.SetBanned(ctx, usr.ID, true)
	if _, _, err := uc.Refresh(ctx, newRefresh); !errors.Is(err, ucauth.ErrBanned) {
		t.Fatalf("expected banned on refresh, got %v", err)
	}
}

func TestAuth_RefreshEmpty(t *testing.T) {
	uc, _, _ := newTestAuth()
	if _, _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

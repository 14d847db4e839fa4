package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "a@b.test", "candidate")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != id || claims.Role != "candidate" || claims.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}
}

func TestHMACService_RefreshRoundTrip(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateRefreshToken(id)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) || claims.Role != "" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := newTestService()
	base := time.Now()
	svc.now = func() time.Time { return base.Add(-2 * time.Minute) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "a@b.test", "poster")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = func() time.Time { return base }

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_ForeignSecret(t *testing.T) {
	other := NewHMACService("x", "y", time.Minute, time.Hour)
	tok, err := other.GenerateAccessToken(uuid.New(), "a@b.test", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := newTestService().ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_MissingSecret(t *testing.T) {
	svc := NewHMACService("", "refresh", time.Minute, time.Hour)
	if _, err := svc.GenerateAccessToken(uuid.New(), "", ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "referhub")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "referhub")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", " ")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected both keys listed, got %q", err.Error())
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Database.DBSSLMode != "disable" {
		t.Fatalf("unexpected sslmode %q", cfg.Database.DBSSLMode)
	}
	if len(cfg.App.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.App.CORSOrigins)
	}
	if cfg.App.AuthRateLimit != 20 || cfg.Mail.Workers != 4 {
		t.Fatalf("unexpected defaults: rate=%d workers=%d", cfg.App.AuthRateLimit, cfg.Mail.Workers)
	}
	if cfg.Mail.Enabled() || cfg.LLM.Enabled() || cfg.ImageHost.Enabled() {
		t.Fatalf("integrations should be disabled without credentials")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "soon")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_EXPIRES_IN") {
		t.Fatalf("expected invalid duration error, got %v", err)
	}
}

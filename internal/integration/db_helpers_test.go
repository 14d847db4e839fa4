package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"referhub/internal/config"
	"referhub/internal/database"
	"referhub/internal/database/migration"
	dbpostgres "referhub/internal/database/postgres"
	"referhub/internal/domain/job"
	"referhub/internal/domain/user"
	"referhub/internal/infrastructure/persistence/postgres"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	usr := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("REFERHUB_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || usr == "" {
		t.Skip("missing test DB env vars: set REFERHUB_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     usr,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// seedUser registers a user with its role profile and deletes it when the
// test ends. Jobs, profiles and referrals go with it through the cascades.
func seedUser(t *testing.T, ctx context.Context, db database.DB, role user.Role, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	u := user.User{
		ID:           id,
		Email:        strings.ToLower(name) + "+" + id.String()[:8] + "@referhub.test",
		PasswordHash: "x",
		FullName:     name,
		Role:         role,
	}
	if err := postgres.NewUserRepository(db).CreateWithProfile(ctx, u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func seedJob(t *testing.T, ctx context.Context, db database.DB, posterID uuid.UUID, title, company, description string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	err := repository.NewPostgresJobRepository(db).Create(ctx, job.Job{
		ID:             id,
		PosterID:       posterID,
		Title:          title,
		CompanyName:    company,
		Location:       "Remote",
		EmploymentType: job.FullTime,
		Description:    description,
		Status:         job.StatusOpen,
	})
	if err != nil {
		t.Fatalf("seed job %q: %v", title, err)
	}
	return id
}

// uniqueCompany keeps concurrent runs against one database from seeing each
// other's inbox rows.
func uniqueCompany(base string) string {
	return base + " " + uuid.NewString()[:8]
}

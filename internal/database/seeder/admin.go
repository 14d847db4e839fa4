package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"referhub/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrNotAdmin = errors.New("email belongs to a non-admin account")

// AdminSeeder creates the first admin account. Admins cannot self-register,
// so a fresh database needs one. Re-running it leaves an existing admin
// untouched.
type AdminSeeder struct {
	Email       string
	Password    string
	DisplayName string
	Logger      *log.Logger
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		if s.Logger != nil {
			s.Logger.Printf("[Seeder] ADMIN_EMAIL not set, skipping admin seed")
		}
		return nil
	}
	if len(s.Password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "Administrator"
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "full_name", "role", "is_banned"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "admin_profiles", "user_id", "display_name", "first_login"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created, err := tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, 'admin')
		ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hash), name,
	)
	if err != nil {
		return err
	}

	var id uuid.UUID
	var role string
	if err := tx.QueryRow(ctx, `SELECT id, role FROM users WHERE email = $1`, email).Scan(&id, &role); err != nil {
		return err
	}
	if role != "admin" {
		return fmt.Errorf("%w: %s", ErrNotAdmin, email)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO admin_profiles (user_id, display_name, first_login)
		VALUES ($1, $2, false)
		ON CONFLICT (user_id) DO NOTHING`,
		id, name,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	if s.Logger != nil {
		if created > 0 {
			s.Logger.Printf("[Seeder] admin created | email=%s", email)
		} else {
			s.Logger.Printf("[Seeder] admin exists | email=%s", email)
		}
	}
	return nil
}

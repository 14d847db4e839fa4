package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referhub/internal/database"
	"referhub/internal/domain/user"

	"github.com/google/uuid"
)

var ErrEmailTaken = errors.New("email already registered")

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// profileTables maps a role to the table holding its profile.
var profileTables = map[user.Role]string{
	user.RolePoster:    "poster_profiles",
	user.RoleReferrer:  "referrer_profiles",
	user.RoleCandidate: "candidate_profiles",
	user.RoleAdmin:     "admin_profiles",
}

func ProfileTable(r user.Role) (string, bool) {
	t, ok := profileTables[r]
	return t, ok
}

const userColumns = `id, email, password_hash, full_name, role, avatar_url, is_banned, created_at, updated_at`

func (r *UserRepository) CreateWithProfile(ctx context.Context, u user.User) error {
	table, ok := ProfileTable(u.Role)
	if !ok {
		return fmt.Errorf("unknown role %q", u.Role)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, string(u.Role),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO `+table+` (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, u.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET full_name = $2, password_hash = $3, updated_at = now() WHERE id = $1`,
		u.ID, u.FullName, u.PasswordHash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return r.execOne(ctx, `UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`, id, url)
}

func (r *UserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	return r.execOne(ctx, `UPDATE users SET is_banned = $2, updated_at = now() WHERE id = $1`, id, banned)
}

// ChangeRole switches the user's role and makes sure a profile row for the
// new role exists. A fresh profile starts with first_login set.
func (r *UserRepository) ChangeRole(ctx context.Context, id uuid.UUID, role user.Role) error {
	table, ok := ProfileTable(role)
	if !ok {
		return fmt.Errorf("unknown role %q", role)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	n, err := tx.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, string(role))
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `INSERT INTO `+table+` (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) List(ctx context.Context, f user.ListFilter) ([]user.User, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if f.Role != nil {
		args = append(args, string(*f.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("(email LIKE $%d OR lower(full_name) LIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) execOne(ctx context.Context, query string, args ...any) error {
	n, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.AvatarURL, &u.Banned, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

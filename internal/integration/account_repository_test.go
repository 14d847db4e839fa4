package integration

import (
	"errors"
	"strings"
	"testing"

	"referhub/internal/domain/profile"
	"referhub/internal/domain/user"
	"referhub/internal/infrastructure/persistence/postgres"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := testContext(t)
	db := connectTestDB(t, ctx)
	users := postgres.NewUserRepository(db)

	id := seedUser(t, ctx, db, user.RoleCandidate, "Dana")
	existing, err := users.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}

	dup := user.User{ID: uuid.New(), Email: existing.Email, PasswordHash: "x", FullName: "Dana Again", Role: user.RolePoster}
	if err := users.CreateWithProfile(ctx, dup); !errors.Is(err, postgres.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The failed insert must not leave a poster profile behind.
	var n int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM poster_profiles WHERE user_id = $1`, dup.ID).Scan(&n); err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no orphan profile, got %d", n)
	}
}

func TestProfileRepository_LoadSessionFirstLogin(t *testing.T) {
	ctx := testContext(t)
	db := connectTestDB(t, ctx)
	profiles := repository.NewPostgresProfileRepository(db)
	users := postgres.NewUserRepository(db)

	id := seedUser(t, ctx, db, user.RoleCandidate, "Evan")

	s, err := profiles.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s.Role != user.RoleCandidate || !s.FirstLogin || s.Banned {
		t.Fatalf("fresh session: %+v", s)
	}

	if err := profiles.SaveCandidate(ctx, profile.Candidate{UserID: id, Headline: "Go dev", ResumeURL: "https://cv.test/evan.pdf", FirstLogin: false}); err != nil {
		t.Fatalf("save candidate: %v", err)
	}
	if err := users.SetBanned(ctx, id, true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	s, err = profiles.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s.FirstLogin || !s.Banned {
		t.Fatalf("after onboarding: %+v", s)
	}

	// A user whose role profile row is missing is still on first login.
	if _, err := db.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, id); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	s, err = profiles.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if !s.FirstLogin {
		t.Fatalf("missing profile should default to first login: %+v", s)
	}

	if _, err := profiles.LoadSession(ctx, uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_ChangeRoleCreatesProfile(t *testing.T) {
	ctx := testContext(t)
	db := connectTestDB(t, ctx)
	profiles := repository.NewPostgresProfileRepository(db)
	users := postgres.NewUserRepository(db)

	id := seedUser(t, ctx, db, user.RoleCandidate, "Fay")
	if err := profiles.SaveCandidate(ctx, profile.Candidate{UserID: id, Headline: "QA", ResumeURL: "https://cv.test/fay.pdf"}); err != nil {
		t.Fatalf("save candidate: %v", err)
	}

	if err := users.ChangeRole(ctx, id, user.RoleReferrer); err != nil {
		t.Fatalf("change role: %v", err)
	}

	s, err := profiles.LoadSession(ctx, id)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if s.Role != user.RoleReferrer || !s.FirstLogin {
		t.Fatalf("after role change: %+v", s)
	}
	rp, err := profiles.GetReferrer(ctx, id)
	if err != nil {
		t.Fatalf("referrer profile missing: %v", err)
	}
	if rp.Verified {
		t.Fatalf("new referrer profile must start unverified")
	}

	// Switching back keeps the old candidate profile rather than resetting it.
	if err := users.ChangeRole(ctx, id, user.RoleCandidate); err != nil {
		t.Fatalf("change back: %v", err)
	}
	cp, err := profiles.GetCandidate(ctx, id)
	if err != nil {
		t.Fatalf("candidate profile: %v", err)
	}
	if cp.Headline != "QA" || cp.FirstLogin {
		t.Fatalf("candidate profile was reset: %+v", cp)
	}

	if err := users.ChangeRole(ctx, uuid.New(), user.RolePoster); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepository_SaveReferrerNeverGrantsVerification(t *testing.T) {
	ctx := testContext(t)
	db := connectTestDB(t, ctx)
	profiles := repository.NewPostgresProfileRepository(db)

	id := seedUser(t, ctx, db, user.RoleReferrer, "Gus")
	p := profile.Referrer{UserID: id, CompanyName: "Acme", JobTitle: "SRE", WorkEmail: "gus@acme.test", Verified: true}

	if err := profiles.SaveReferrer(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := profiles.GetReferrer(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Verified {
		t.Fatalf("a profile save must not verify the referrer")
	}

	if err := profiles.SetReferrerVerified(ctx, id, true); err != nil {
		t.Fatalf("verify: %v", err)
	}
	p.JobTitle = "Staff SRE"
	if err := profiles.SaveReferrer(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ = profiles.GetReferrer(ctx, id); !got.Verified || got.JobTitle != "Staff SRE" {
		t.Fatalf("title edit should keep verification: %+v", got)
	}

	p.CompanyName = "Globex"
	p.Verified = false
	if err := profiles.SaveReferrer(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ = profiles.GetReferrer(ctx, id); got.Verified || !strings.EqualFold(got.CompanyName, "globex") {
		t.Fatalf("company change should clear verification: %+v", got)
	}
}

package integration

import (
	"testing"

	"referhub/internal/domain/user"
	"referhub/internal/repository"
	"referhub/internal/search"

	"github.com/google/uuid"
)

func TestJobRepository_ListSearch(t *testing.T) {
	ctx := testContext(t)
	db := connectTestDB(t, ctx)
	jobs := repository.NewPostgresJobRepository(db)

	poster := seedUser(t, ctx, db, user.RolePoster, "Poster")
	frontEnd := seedJob(t, ctx, db, poster, "Senior Front-End Developer", "Acme", "React and TypeScript")
	devops := seedJob(t, ctx, db, poster, "Platform Engineer", "Acme", "Own our  Dev-Ops   tooling")
	percent := seedJob(t, ctx, db, poster, "Growth Analyst", "100% Remote Co", "Grow revenue")
	plain := seedJob(t, ctx, db, poster, "Growth Analyst", "1000 Remote Co", "Grow revenue")

	list := func(f repository.JobFilter) map[uuid.UUID]bool {
		t.Helper()
		f.PosterID = &poster
		got, err := jobs.List(ctx, f)
		if err != nil {
			t.Fatalf("list %+v: %v", f, err)
		}
		out := make(map[uuid.UUID]bool, len(got))
		for _, j := range got {
			out[j.ID] = true
		}
		return out
	}

	// Punctuation in the stored title does not hide it from a spaced query.
	if got := list(repository.JobFilter{Terms: search.Expand("front end")}); len(got) != 1 || !got[frontEnd] {
		t.Fatalf("front end search: %v", got)
	}
	if got := list(repository.JobFilter{Terms: search.Expand("frontend")}); len(got) != 1 || !got[frontEnd] {
		t.Fatalf("frontend search: %v", got)
	}
	if got := list(repository.JobFilter{Terms: search.Expand("DevOps")}); len(got) != 1 || !got[devops] {
		t.Fatalf("devops search: %v", got)
	}

	// LIKE wildcards in user input match literally.
	if got := list(repository.JobFilter{Company: "100%"}); len(got) != 1 || !got[percent] {
		t.Fatalf("percent company search: %v", got)
	}
	if got := list(repository.JobFilter{Company: "10_0"}); len(got) != 0 {
		t.Fatalf("underscore must not act as a wildcard: %v", got)
	}
	if got := list(repository.JobFilter{Company: "remote co"}); len(got) != 2 || !got[percent] || !got[plain] {
		t.Fatalf("company search: %v", got)
	}
}

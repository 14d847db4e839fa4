package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"referhub/internal/domain/profile"
	"referhub/internal/infrastructure/imagehost"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestProfiles_PartialUpdateKeepsGate(t *testing.T) {
	repo := newFakeProfiles()
	uc := NewProfileUsecase(repo, nil, nil)
	id := uuid.New()
	repo.posters[id] = profile.Poster{UserID: id, FirstLogin: true}

	p, err := uc.UpdatePoster(context.Background(), id, PosterInput{CompanyName: strPtr("  Acme ")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.CompanyName != "Acme" {
		t.Fatalf("expected trimmed company, got %q", p.CompanyName)
	}
	if !p.FirstLogin {
		t.Fatalf("partial update must not clear first_login")
	}
}

func TestProfiles_OnboardingRequiresFields(t *testing.T) {
	repo := newFakeProfiles()
	uc := NewProfileUsecase(repo, nil, nil)
	ctx := context.Background()
	id := uuid.New()
	repo.candidates[id] = profile.Candidate{UserID: id, FirstLogin: true}

	if _, err := uc.OnboardCandidate(ctx, id, CandidateInput{Headline: strPtr("Go dev")}); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected incomplete, got %v", err)
	}

	years := 4
	skills := []string{"Go", " go ", "PostgreSQL", ""}
	p, err := uc.OnboardCandidate(ctx, id, CandidateInput{
		Headline:        strPtr("Go dev"),
		ResumeURL:       strPtr("https://cv.example.com/me.pdf"),
		YearsExperience: &years,
		Skills:          &skills,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.FirstLogin {
		t.Fatalf("onboarding must clear first_login")
	}
	if len(p.Skills) != 2 {
		t.Fatalf("expected deduped skills, got %v", p.Skills)
	}

	neg := -1
	if _, err := uc.UpdateCandidate(ctx, id, CandidateInput{YearsExperience: &neg}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestProfiles_ReferrerOnboardingNormalisesWorkEmail(t *testing.T) {
	repo := newFakeProfiles()
	uc := NewProfileUsecase(repo, nil, nil)
	ctx := context.Background()
	id := uuid.New()

	if _, err := uc.OnboardReferrer(ctx, id, ReferrerInput{
		CompanyName: strPtr("Acme"),
		JobTitle:    strPtr("Engineer"),
		WorkEmail:   strPtr("not an email"),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	p, err := uc.OnboardReferrer(ctx, id, ReferrerInput{
		CompanyName: strPtr("Acme"),
		JobTitle:    strPtr("Engineer"),
		WorkEmail:   strPtr(" Me@Acme.COM "),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.WorkEmail != "me@acme.com" || p.FirstLogin || p.Verified {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestProfiles_OptionalFieldsClear(t *testing.T) {
	repo := newFakeProfiles()
	uc := NewProfileUsecase(repo, nil, nil)
	ctx := context.Background()
	id := uuid.New()
	site := "https://acme.test"
	repo.posters[id] = profile.Poster{UserID: id, CompanyWebsite: &site}

	p, err := uc.UpdatePoster(ctx, id, PosterInput{CompanyWebsite: strPtr("  ")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.CompanyWebsite != nil {
		t.Fatalf("expected website cleared")
	}
}

func TestProfiles_LogoUpload(t *testing.T) {
	repo := newFakeProfiles()
	id := uuid.New()
	repo.posters[id] = profile.Poster{UserID: id}

	up := &fakeUploader{url: "https://img.test/logo.png"}
	uc := NewProfileUsecase(repo, up, nil)
	p, err := uc.UploadPosterLogo(context.Background(), id, strings.NewReader("png"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.CompanyLogoURL == nil || *p.CompanyLogoURL != up.url {
		t.Fatalf("expected logo url stored")
	}
	if len(up.folders) != 1 || up.folders[0] != logoFolder {
		t.Fatalf("unexpected folders: %v", up.folders)
	}

	disabled := NewProfileUsecase(repo, imagehost.Disabled{}, nil)
	if _, err := disabled.UploadPosterLogo(context.Background(), id, strings.NewReader("png")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestProfiles_MissingRowReadsAsFreshProfile(t *testing.T) {
	uc := NewProfileUsecase(newFakeProfiles(), nil, nil)
	id := uuid.New()
	p, err := uc.GetAdmin(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !p.FirstLogin || p.UserID != id {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

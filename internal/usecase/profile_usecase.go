package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"referhub/internal/domain/profile"
	"referhub/internal/infrastructure/imagehost"
	"referhub/internal/repository"
	ucauth "referhub/internal/usecase/auth"

	"github.com/google/uuid"
)

const (
	logoFolder     = "company-logos"
	maxSkills      = 50
	maxSkillLength = 60
)

var ErrProfileIncomplete = errors.New("profile incomplete")

type PosterInput struct {
	CompanyName    *string
	CompanyWebsite *string
	Position       *string
}

type ReferrerInput struct {
	CompanyName *string
	JobTitle    *string
	WorkEmail   *string
	LinkedInURL *string
}

type CandidateInput struct {
	Headline        *string
	Bio             *string
	ResumeURL       *string
	LinkedInURL     *string
	Skills          *[]string
	YearsExperience *int
}

type AdminInput struct {
	DisplayName *string
}

// Profiles serves the per-role profile pages and the onboarding step. A
// partial update never clears first_login; a complete onboarding does.
type Profiles struct {
	repo   repository.ProfileRepository
	images imagehost.Uploader
	logger *log.Logger
}

func NewProfileUsecase(repo repository.ProfileRepository, images imagehost.Uploader, logger *log.Logger) *Profiles {
	return &Profiles{repo: repo, images: images, logger: logger}
}

func (u *Profiles) GetPoster(ctx context.Context, userID uuid.UUID) (profile.Poster, error) {
	p, err := u.repo.GetPoster(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return profile.Poster{UserID: userID, FirstLogin: true}, nil
	}
	if err != nil {
		return profile.Poster{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpdatePoster(ctx context.Context, userID uuid.UUID, in PosterInput) (profile.Poster, error) {
	return u.savePoster(ctx, userID, in, false)
}

func (u *Profiles) OnboardPoster(ctx context.Context, userID uuid.UUID, in PosterInput) (profile.Poster, error) {
	return u.savePoster(ctx, userID, in, true)
}

func (u *Profiles) savePoster(ctx context.Context, userID uuid.UUID, in PosterInput, onboarding bool) (profile.Poster, error) {
	p, err := u.GetPoster(ctx, userID)
	if err != nil {
		return profile.Poster{}, err
	}
	setString(&p.CompanyName, in.CompanyName)
	setOptional(&p.CompanyWebsite, in.CompanyWebsite)
	setString(&p.Position, in.Position)

	if onboarding {
		if !p.Complete() {
			return profile.Poster{}, ErrProfileIncomplete
		}
		p.FirstLogin = false
	}
	if err := u.repo.SavePoster(ctx, p); err != nil {
		return profile.Poster{}, ErrInternal
	}
	return u.GetPoster(ctx, userID)
}

func (u *Profiles) UploadPosterLogo(ctx context.Context, userID uuid.UUID, r io.Reader) (profile.Poster, error) {
	if _, err := u.GetPoster(ctx, userID); err != nil {
		return profile.Poster{}, err
	}
	url, err := uploadImage(ctx, u.images, r, logoFolder, userID.String())
	if err != nil {
		if u.logger != nil && !errors.Is(err, ErrUnavailable) {
			u.logger.Printf("[Profile] logo upload failed | user_id=%s err=%v", userID, err)
		}
		return profile.Poster{}, err
	}
	if err := u.repo.SetPosterLogo(ctx, userID, url); err != nil {
		return profile.Poster{}, ErrInternal
	}
	return u.GetPoster(ctx, userID)
}

func (u *Profiles) GetReferrer(ctx context.Context, userID uuid.UUID) (profile.Referrer, error) {
	p, err := u.repo.GetReferrer(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return profile.Referrer{UserID: userID, FirstLogin: true}, nil
	}
	if err != nil {
		return profile.Referrer{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpdateReferrer(ctx context.Context, userID uuid.UUID, in ReferrerInput) (profile.Referrer, error) {
	return u.saveReferrer(ctx, userID, in, false)
}

func (u *Profiles) OnboardReferrer(ctx context.Context, userID uuid.UUID, in ReferrerInput) (profile.Referrer, error) {
	return u.saveReferrer(ctx, userID, in, true)
}

func (u *Profiles) saveReferrer(ctx context.Context, userID uuid.UUID, in ReferrerInput, onboarding bool) (profile.Referrer, error) {
	p, err := u.GetReferrer(ctx, userID)
	if err != nil {
		return profile.Referrer{}, err
	}
	company, workEmail := p.CompanyName, p.WorkEmail
	setString(&p.CompanyName, in.CompanyName)
	setString(&p.JobTitle, in.JobTitle)
	setOptional(&p.LinkedInURL, in.LinkedInURL)
	if in.WorkEmail != nil {
		email := ucauth.NormalizeEmail(*in.WorkEmail)
		if email == "" {
			return profile.Referrer{}, ErrInvalidInput
		}
		p.WorkEmail = email
	}

	// Verification vouches for one company and work address; changing
	// either needs an admin to verify again.
	if p.Verified && (!strings.EqualFold(strings.TrimSpace(company), strings.TrimSpace(p.CompanyName)) || !strings.EqualFold(workEmail, p.WorkEmail)) {
		p.Verified = false
		if u.logger != nil {
			u.logger.Printf("[Profile] referrer verification cleared | user_id=%s", userID)
		}
	}

	if onboarding {
		if !p.Complete() {
			return profile.Referrer{}, ErrProfileIncomplete
		}
		p.FirstLogin = false
	}
	if err := u.repo.SaveReferrer(ctx, p); err != nil {
		return profile.Referrer{}, ErrInternal
	}
	return u.GetReferrer(ctx, userID)
}

func (u *Profiles) GetCandidate(ctx context.Context, userID uuid.UUID) (profile.Candidate, error) {
	p, err := u.repo.GetCandidate(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return profile.Candidate{UserID: userID, Skills: []string{}, FirstLogin: true}, nil
	}
	if err != nil {
		return profile.Candidate{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpdateCandidate(ctx context.Context, userID uuid.UUID, in CandidateInput) (profile.Candidate, error) {
	return u.saveCandidate(ctx, userID, in, false)
}

func (u *Profiles) OnboardCandidate(ctx context.Context, userID uuid.UUID, in CandidateInput) (profile.Candidate, error) {
	return u.saveCandidate(ctx, userID, in, true)
}

func (u *Profiles) saveCandidate(ctx context.Context, userID uuid.UUID, in CandidateInput, onboarding bool) (profile.Candidate, error) {
	p, err := u.GetCandidate(ctx, userID)
	if err != nil {
		return profile.Candidate{}, err
	}
	setString(&p.Headline, in.Headline)
	setOptional(&p.Bio, in.Bio)
	setString(&p.ResumeURL, in.ResumeURL)
	setOptional(&p.LinkedInURL, in.LinkedInURL)
	if in.YearsExperience != nil {
		if *in.YearsExperience < 0 {
			return profile.Candidate{}, ErrInvalidInput
		}
		p.YearsExperience = *in.YearsExperience
	}
	if in.Skills != nil {
		skills, ok := normalizeSkills(*in.Skills)
		if !ok {
			return profile.Candidate{}, ErrInvalidInput
		}
		p.Skills = skills
	}

	if onboarding {
		if !p.Complete() {
			return profile.Candidate{}, ErrProfileIncomplete
		}
		p.FirstLogin = false
	}
	if err := u.repo.SaveCandidate(ctx, p); err != nil {
		return profile.Candidate{}, ErrInternal
	}
	return u.GetCandidate(ctx, userID)
}

func (u *Profiles) GetAdmin(ctx context.Context, userID uuid.UUID) (profile.Admin, error) {
	p, err := u.repo.GetAdmin(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return profile.Admin{UserID: userID, FirstLogin: true}, nil
	}
	if err != nil {
		return profile.Admin{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) UpdateAdmin(ctx context.Context, userID uuid.UUID, in AdminInput) (profile.Admin, error) {
	return u.saveAdmin(ctx, userID, in, false)
}

func (u *Profiles) OnboardAdmin(ctx context.Context, userID uuid.UUID, in AdminInput) (profile.Admin, error) {
	return u.saveAdmin(ctx, userID, in, true)
}

func (u *Profiles) saveAdmin(ctx context.Context, userID uuid.UUID, in AdminInput, onboarding bool) (profile.Admin, error) {
	p, err := u.GetAdmin(ctx, userID)
	if err != nil {
		return profile.Admin{}, err
	}
	setString(&p.DisplayName, in.DisplayName)

	if onboarding {
		if !p.Complete() {
			return profile.Admin{}, ErrProfileIncomplete
		}
		p.FirstLogin = false
	}
	if err := u.repo.SaveAdmin(ctx, p); err != nil {
		return profile.Admin{}, ErrInternal
	}
	return u.GetAdmin(ctx, userID)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// setOptional clears the field when the new value is blank.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}

func normalizeSkills(in []string) ([]string, bool) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		if len(s) > maxSkillLength {
			return nil, false
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	if len(out) > maxSkills {
		return nil, false
	}
	return out, true
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"referhub/internal/domain/job"
	"referhub/internal/infrastructure/fetcher"
	"referhub/internal/infrastructure/llm"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

var ErrImportFailed = errors.New("could not extract a job from that page")

const (
	maxTitleLen       = 200
	maxDescriptionLen = 20000
)

type JobInput struct {
	Title          string
	CompanyName    string
	Location       string
	EmploymentType string
	Description    string
	SalaryRange    *string
	Skills         []string
}

type JobPatch struct {
	Title          *string
	CompanyName    *string
	Location       *string
	EmploymentType *string
	Description    *string
	SalaryRange    *string
	Skills         *[]string
}

type JobUsecase interface {
	Create(ctx context.Context, posterID uuid.UUID, in JobInput) (job.Job, error)
	ListOwn(ctx context.Context, posterID uuid.UUID, limit, offset int) ([]job.Job, error)
	GetOwn(ctx context.Context, posterID, jobID uuid.UUID) (job.Job, error)
	Update(ctx context.Context, posterID, jobID uuid.UUID, in JobPatch) (job.Job, error)
	SetStatus(ctx context.Context, posterID, jobID uuid.UUID, status job.Status) (job.Job, error)
	Delete(ctx context.Context, posterID, jobID uuid.UUID) error
	Import(ctx context.Context, rawURL string) (job.Draft, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	cache    Cache
	fetcher  fetcher.Fetcher
	llm      llm.Completer
	logger   *log.Logger
}

func NewJobUsecase(jobs repository.JobRepository, profiles repository.ProfileRepository, cache Cache, f fetcher.Fetcher, completer llm.Completer, logger *log.Logger) *Jobs {
	return &Jobs{jobs: jobs, profiles: profiles, cache: cache, fetcher: f, llm: completer, logger: logger}
}

func (u *Jobs) Create(ctx context.Context, posterID uuid.UUID, in JobInput) (job.Job, error) {
	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		p, err := u.profiles.GetPoster(ctx, posterID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			return job.Job{}, ErrInternal
		}
		company = p.CompanyName
	}

	j := job.Job{
		ID:             uuid.New(),
		PosterID:       posterID,
		Title:          strings.TrimSpace(in.Title),
		CompanyName:    company,
		Location:       strings.TrimSpace(in.Location),
		EmploymentType: job.EmploymentType(strings.TrimSpace(in.EmploymentType)),
		Description:    strings.TrimSpace(in.Description),
		SalaryRange:    trimmedOrNil(in.SalaryRange),
		Status:         job.StatusOpen,
	}
	if j.EmploymentType == "" {
		j.EmploymentType = job.FullTime
	}
	skills, ok := normalizeSkills(in.Skills)
	if !ok {
		return job.Job{}, ErrInvalidInput
	}
	j.Skills = skills

	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}
	if err := u.jobs.Create(ctx, j); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] create failed | poster_id=%s err=%v", posterID, err)
		}
		return job.Job{}, ErrInternal
	}
	u.invalidate(ctx)
	return u.GetOwn(ctx, posterID, j.ID)
}

func (u *Jobs) ListOwn(ctx context.Context, posterID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit < 0 || limit > 50 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.jobs.List(ctx, repository.JobFilter{PosterID: &posterID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// GetOwn hides other posters' jobs behind not-found rather than forbidden.
func (u *Jobs) GetOwn(ctx context.Context, posterID, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.PosterID != posterID {
		return job.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (u *Jobs) Update(ctx context.Context, posterID, jobID uuid.UUID, in JobPatch) (job.Job, error) {
	j, err := u.GetOwn(ctx, posterID, jobID)
	if err != nil {
		return job.Job{}, err
	}

	setString(&j.Title, in.Title)
	setString(&j.CompanyName, in.CompanyName)
	setString(&j.Location, in.Location)
	setString(&j.Description, in.Description)
	setOptional(&j.SalaryRange, in.SalaryRange)
	if in.EmploymentType != nil {
		j.EmploymentType = job.EmploymentType(strings.TrimSpace(*in.EmploymentType))
	}
	if in.Skills != nil {
		skills, ok := normalizeSkills(*in.Skills)
		if !ok {
			return job.Job{}, ErrInvalidInput
		}
		j.Skills = skills
	}

	if err := validateJob(j); err != nil {
		return job.Job{}, err
	}
	if err := u.jobs.Update(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidate(ctx)
	return u.GetOwn(ctx, posterID, jobID)
}

func (u *Jobs) SetStatus(ctx context.Context, posterID, jobID uuid.UUID, status job.Status) (job.Job, error) {
	if status != job.StatusOpen && status != job.StatusClosed {
		return job.Job{}, ErrInvalidInput
	}
	j, err := u.GetOwn(ctx, posterID, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if j.Status == status {
		return j, nil
	}
	if err := u.jobs.SetStatus(ctx, jobID, status); err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidate(ctx)
	return u.GetOwn(ctx, posterID, jobID)
}

func (u *Jobs) Delete(ctx context.Context, posterID, jobID uuid.UUID) error {
	if _, err := u.GetOwn(ctx, posterID, jobID); err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	u.invalidate(ctx)
	return nil
}

// Import turns an external posting into a draft the poster can review. The
// draft is not stored.
func (u *Jobs) Import(ctx context.Context, rawURL string) (job.Draft, error) {
	if u.fetcher == nil || u.llm == nil {
		return job.Draft{}, ErrUnavailable
	}

	page, err := u.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		switch {
		case errors.Is(err, fetcher.ErrInvalidURL):
			return job.Draft{}, ErrInvalidInput
		case errors.Is(err, fetcher.ErrEmptyPage):
			return job.Draft{}, ErrImportFailed
		}
		if u.logger != nil {
			u.logger.Printf("[Import] fetch failed | url=%s err=%v", rawURL, err)
		}
		return job.Draft{}, ErrImportFailed
	}

	out, err := u.llm.Complete(ctx, llm.JobExtractionPrompt(page.Title, page.Text))
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			return job.Draft{}, ErrUnavailable
		}
		return job.Draft{}, ErrImportFailed
	}

	var d job.Draft
	if err := json.Unmarshal([]byte(llm.StripCodeFence(out)), &d); err != nil {
		if u.logger != nil {
			u.logger.Printf("[Import] unparseable completion | url=%s err=%v", rawURL, err)
		}
		return job.Draft{}, ErrImportFailed
	}

	d.Title = strings.TrimSpace(d.Title)
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.Location = strings.TrimSpace(d.Location)
	d.Description = strings.TrimSpace(d.Description)
	d.SalaryRange = trimmedOrNil(d.SalaryRange)
	if !job.EmploymentType(d.EmploymentType).Valid() {
		d.EmploymentType = string(job.FullTime)
	}
	if skills, ok := normalizeSkills(d.Skills); ok {
		d.Skills = skills
	} else {
		d.Skills = []string{}
	}
	d.SourceURL = page.URL

	if d.Title == "" && d.Description == "" {
		return job.Draft{}, ErrImportFailed
	}
	return d, nil
}

func (u *Jobs) invalidate(ctx context.Context) {
	invalidateJobCaches(ctx, u.cache, u.logger)
}

func invalidateJobCaches(ctx context.Context, cache Cache, logger *log.Logger) {
	if cache == nil {
		return
	}
	if err := cache.DeleteByPattern(ctx, jobsSearchPattern); err != nil && logger != nil {
		logger.Printf("[Jobs] cache invalidation failed: %v", err)
	}
	_ = cache.Delete(ctx, adminStatsKey)
}

func validateJob(j job.Job) error {
	if j.Title == "" || len(j.Title) > maxTitleLen {
		return ErrInvalidInput
	}
	if j.CompanyName == "" {
		return ErrInvalidInput
	}
	if j.Description == "" || len(j.Description) > maxDescriptionLen {
		return ErrInvalidInput
	}
	if !j.EmploymentType.Valid() {
		return ErrInvalidInput
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

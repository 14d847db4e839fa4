package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"referhub/internal/domain/job"
	"referhub/internal/domain/matching"
	"referhub/internal/repository"
	"referhub/internal/search"

	"github.com/google/uuid"
)

const (
	jobsCacheTTL      = 5 * time.Minute
	jobsLockTTL       = 10 * time.Second
	recommendPoolSize = 50
)

type JobListParams struct {
	Query    string
	Location string
	Company  string
	Skill    string
	Limit    int
	Offset   int
}

type Recommendation struct {
	Job   job.Job
	Match matching.Result
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]job.Job, error)
	GetOpenJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	Recommend(ctx context.Context, candidateID uuid.UUID, limit int) ([]Recommendation, error)
}

// JobList is the public, read-only side of jobs. Listings are cached per
// normalised filter; writers invalidate every listing at once.
type JobList struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	cache    Cache
	logger   *log.Logger
}

func NewJobListUsecase(jobs repository.JobRepository, profiles repository.ProfileRepository, cache Cache, logger *log.Logger) *JobList {
	return &JobList{jobs: jobs, profiles: profiles, cache: cache, logger: logger}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) ([]job.Job, error) {
	if params.Limit == 0 {
		params.Limit = 20
	}
	if params.Limit < 0 || params.Limit > 50 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	cacheKey := JobsSearchCacheKey(params)
	if cached, ok := u.cached(ctx, cacheKey); ok {
		return cached, nil
	}

	// One caller rebuilds a missing entry; the rest wait briefly for it and
	// fall through to the database if it does not show up.
	lockKey := cacheKey + ":lock"
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", jobsLockTTL)
		if err == nil && !ok {
			wait := 200*time.Millisecond + time.Duration(time.Now().UnixNano()%101)*time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			if cached, ok := u.cached(ctx, cacheKey); ok {
				return cached, nil
			}
		} else if err == nil {
			defer func() { _ = u.cache.Delete(context.Background(), lockKey) }()
		}
	}

	items, err := u.jobs.List(ctx, repository.JobFilter{
		Terms:    search.Expand(params.Query),
		Location: params.Location,
		Company:  params.Company,
		Skill:    params.Skill,
		OpenOnly: true,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] list failed: %v", err)
		}
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, items, jobsCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Jobs] cache set failed key=%s err=%v", cacheKey, err)
		}
	}
	return items, nil
}

func (u *JobList) cached(ctx context.Context, key string) ([]job.Job, bool) {
	if u.cache == nil {
		return nil, false
	}
	var cached []job.Job
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err == nil && hit {
		if u.logger != nil {
			u.logger.Printf("[Jobs] Cache HIT: %s", key)
		}
		return cached, true
	}
	if u.logger != nil {
		u.logger.Printf("[Jobs] Cache MISS: %s", key)
	}
	return nil, false
}

func (u *JobList) GetOpenJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.Status != job.StatusOpen {
		return job.Job{}, ErrJobNotFound
	}
	return j, nil
}

// Recommend ranks the newest open jobs by overlap with the candidate's
// skills. Jobs sharing no skill are left out.
func (u *JobList) Recommend(ctx context.Context, candidateID uuid.UUID, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > recommendPoolSize {
		return nil, ErrInvalidInput
	}

	p, err := u.profiles.GetCandidate(ctx, candidateID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, ErrInternal
	}
	out := make([]Recommendation, 0, limit)
	if len(p.Skills) == 0 {
		return out, nil
	}

	jobs, err := u.jobs.List(ctx, repository.JobFilter{OpenOnly: true, Limit: recommendPoolSize})
	if err != nil {
		return nil, ErrInternal
	}
	for _, j := range jobs {
		res := matching.Calculate(p.Skills, j.Skills)
		if len(res.MatchedSkills) == 0 {
			continue
		}
		out = append(out, Recommendation{Job: j, Match: res})
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Match.MatchScore > out[k].Match.MatchScore
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

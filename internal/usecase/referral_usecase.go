package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"referhub/internal/domain/job"
	"referhub/internal/domain/referral"
	"referhub/internal/infrastructure/llm"
	"referhub/internal/infrastructure/mailer"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

const (
	maxPitchLen      = 4000
	pitchThrottleTTL = 30 * time.Second
)

// Notifier delivers email without blocking the caller.
type Notifier interface {
	Notify(msg mailer.Message)
}

type ReferralUsecase interface {
	Request(ctx context.Context, candidateID, jobID uuid.UUID, pitch string) (referral.View, error)
	ListMine(ctx context.Context, candidateID uuid.UUID) ([]referral.View, error)
	Withdraw(ctx context.Context, candidateID, referralID uuid.UUID) (referral.View, error)
	DraftPitch(ctx context.Context, candidateID, jobID uuid.UUID) (string, error)

	Inbox(ctx context.Context, referrerID uuid.UUID, status *referral.Status, limit, offset int) ([]referral.View, error)
	Act(ctx context.Context, referrerID, referralID uuid.UUID, to referral.Status) (referral.View, error)

	ForJob(ctx context.Context, posterID, jobID uuid.UUID) ([]referral.View, error)
}

type Referrals struct {
	referrals repository.ReferralRepository
	jobs      repository.JobRepository
	profiles  repository.ProfileRepository
	cache     Cache
	llm       llm.Completer
	notifier  Notifier
	hub       Broadcaster
	publicURL string
	logger    *log.Logger
}

type ReferralDeps struct {
	Referrals repository.ReferralRepository
	Jobs      repository.JobRepository
	Profiles  repository.ProfileRepository
	Cache     Cache
	LLM       llm.Completer
	Notifier  Notifier
	Hub       Broadcaster
	PublicURL string
	Logger    *log.Logger
}

func NewReferralUsecase(d ReferralDeps) *Referrals {
	return &Referrals{
		referrals: d.Referrals,
		jobs:      d.Jobs,
		profiles:  d.Profiles,
		cache:     d.Cache,
		llm:       d.LLM,
		notifier:  d.Notifier,
		hub:       d.Hub,
		publicURL: strings.TrimRight(d.PublicURL, "/"),
		logger:    d.Logger,
	}
}

func (u *Referrals) Request(ctx context.Context, candidateID, jobID uuid.UUID, pitch string) (referral.View, error) {
	pitch = strings.TrimSpace(pitch)
	if utf8.RuneCountInString(pitch) > maxPitchLen {
		return referral.View{}, ErrInvalidInput
	}
	if _, err := u.openJob(ctx, jobID); err != nil {
		return referral.View{}, err
	}

	req := referral.Request{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Pitch:       pitch,
		Status:      referral.StatusPending,
	}
	if err := u.referrals.Create(ctx, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrReferralExists):
			return referral.View{}, ErrReferralExists
		case errors.Is(err, repository.ErrJobNotFound):
			return referral.View{}, ErrJobNotFound
		}
		return referral.View{}, ErrInternal
	}
	u.invalidateStats(ctx)
	return u.view(ctx, req.ID)
}

func (u *Referrals) ListMine(ctx context.Context, candidateID uuid.UUID) ([]referral.View, error) {
	items, err := u.referrals.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Referrals) Withdraw(ctx context.Context, candidateID, referralID uuid.UUID) (referral.View, error) {
	v, err := u.view(ctx, referralID)
	if err != nil {
		return referral.View{}, err
	}
	if v.CandidateID != candidateID {
		return referral.View{}, ErrReferralNotFound
	}
	if err := referral.CanTransition(v.Status, referral.StatusWithdrawn, referral.ActorCandidate); err != nil {
		return referral.View{}, ErrInvalidTransition
	}
	if err := u.referrals.Transition(ctx, referralID, v.Status, referral.StatusWithdrawn, nil); err != nil {
		return referral.View{}, mapTransitionErr(err)
	}

	updated, err := u.view(ctx, referralID)
	if err != nil {
		return referral.View{}, err
	}
	u.invalidateStats(ctx)
	to := ""
	if updated.ReferrerEmail != nil {
		to = *updated.ReferrerEmail
	}
	u.announce(to, updated)
	return updated, nil
}

// DraftPitch asks the LLM for a short referral pitch. Each candidate gets one
// draft per job per throttle window.
func (u *Referrals) DraftPitch(ctx context.Context, candidateID, jobID uuid.UUID) (string, error) {
	if u.llm == nil {
		return "", ErrUnavailable
	}
	j, err := u.openJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	p, err := u.profiles.GetCandidate(ctx, candidateID)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return "", ErrInternal
	}

	lockKey := PitchThrottleKey(candidateID, jobID)
	locked := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", pitchThrottleTTL)
		if err == nil && !ok {
			return "", ErrThrottled
		}
		locked = err == nil
	}

	in := llm.PitchInput{
		CompanyName:     j.CompanyName,
		JobTitle:        j.Title,
		JobDescription:  j.Description,
		Headline:        p.Headline,
		YearsExperience: p.YearsExperience,
		Skills:          p.Skills,
	}
	if p.Bio != nil {
		in.Bio = *p.Bio
	}

	out, err := u.llm.Complete(ctx, llm.PitchPrompt(in))
	if err != nil {
		// A failed draft does not count against the window.
		if locked {
			_ = u.cache.Delete(context.WithoutCancel(ctx), lockKey)
		}
		if errors.Is(err, llm.ErrUnavailable) {
			return "", ErrUnavailable
		}
		if u.logger != nil {
			u.logger.Printf("[Referral] pitch draft failed | candidate_id=%s job_id=%s err=%v", candidateID, jobID, err)
		}
		return "", ErrInternal
	}

	return truncateRunes(strings.TrimSpace(llm.StripCodeFence(out)), maxPitchLen), nil
}

// truncateRunes keeps the first max characters of s.
func truncateRunes(s string, max int) string {
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

func (u *Referrals) Inbox(ctx context.Context, referrerID uuid.UUID, status *referral.Status, limit, offset int) ([]referral.View, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidInput
	}
	if limit < 0 || limit > 50 || offset < 0 {
		return nil, ErrInvalidInput
	}
	rp, err := u.profiles.GetReferrer(ctx, referrerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return []referral.View{}, nil
		}
		return nil, ErrInternal
	}
	if strings.TrimSpace(rp.CompanyName) == "" {
		return []referral.View{}, nil
	}

	items, err := u.referrals.ListInbox(ctx, repository.ReferralInboxFilter{
		ReferrerID:  referrerID,
		CompanyName: rp.CompanyName,
		Status:      status,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Act applies a referrer decision. The first referrer to act on a request
// claims it; after that only the claimant sees or moves it.
func (u *Referrals) Act(ctx context.Context, referrerID, referralID uuid.UUID, to referral.Status) (referral.View, error) {
	rp, err := u.profiles.GetReferrer(ctx, referrerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return referral.View{}, ErrReferrerNotVerified
		}
		return referral.View{}, ErrInternal
	}
	if !rp.Verified {
		return referral.View{}, ErrReferrerNotVerified
	}

	v, err := u.view(ctx, referralID)
	if err != nil {
		return referral.View{}, err
	}
	if !strings.EqualFold(strings.TrimSpace(v.CompanyName), strings.TrimSpace(rp.CompanyName)) {
		return referral.View{}, ErrReferralNotFound
	}
	if v.ReferrerID != nil && *v.ReferrerID != referrerID {
		return referral.View{}, ErrReferralNotFound
	}
	if err := referral.CanTransition(v.Status, to, referral.ActorReferrer); err != nil {
		return referral.View{}, ErrInvalidTransition
	}

	if err := u.referrals.Transition(ctx, referralID, v.Status, to, &referrerID); err != nil {
		return referral.View{}, mapTransitionErr(err)
	}

	updated, err := u.view(ctx, referralID)
	if err != nil {
		return referral.View{}, err
	}
	u.invalidateStats(ctx)
	if u.logger != nil {
		u.logger.Printf("[Referral] status changed | id=%s from=%s to=%s by=%s", referralID, v.Status, to, referrerID)
	}
	u.announce(updated.CandidateEmail, updated)
	return updated, nil
}

func (u *Referrals) ForJob(ctx context.Context, posterID, jobID uuid.UUID) ([]referral.View, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if j.PosterID != posterID {
		return nil, ErrJobNotFound
	}
	items, err := u.referrals.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Referrals) openJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.Status != job.StatusOpen {
		return job.Job{}, ErrJobClosed
	}
	return j, nil
}

func (u *Referrals) view(ctx context.Context, id uuid.UUID) (referral.View, error) {
	v, err := u.referrals.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferralNotFound) {
			return referral.View{}, ErrReferralNotFound
		}
		return referral.View{}, ErrInternal
	}
	return v, nil
}

// announce pushes the new status to the referral's chat room and emails the
// other party.
func (u *Referrals) announce(to string, v referral.View) {
	if u.hub != nil {
		if b, err := json.Marshal(StatusEvent{Type: "status", ReferralID: v.ID, Status: v.Status, UpdatedAt: v.UpdatedAt}); err == nil {
			u.hub.Broadcast(ChatTopic(v.ID), b)
		}
	}
	if u.notifier == nil || to == "" {
		return
	}
	u.notifier.Notify(StatusChangeEmail(to, v, u.publicURL))
}

func (u *Referrals) invalidateStats(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.Delete(ctx, adminStatsKey)
	}
}

// StatusChangeEmail renders the plain-text notice sent on every status
// change.
func StatusChangeEmail(to string, v referral.View, publicURL string) mailer.Message {
	subject := fmt.Sprintf("Referral for %s at %s is now %s", v.JobTitle, v.CompanyName, v.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "The referral request for %s at %s changed status to %q.\n", v.JobTitle, v.CompanyName, v.Status)
	fmt.Fprintf(&b, "Candidate: %s\n", v.CandidateName)
	if v.ReferrerName != nil {
		fmt.Fprintf(&b, "Referrer: %s\n", *v.ReferrerName)
	}
	if publicURL != "" {
		fmt.Fprintf(&b, "\nOpen it here: %s/referrals/%s\n", publicURL, v.ID)
	}
	return mailer.Message{To: to, Subject: subject, Body: b.String()}
}

func mapTransitionErr(err error) error {
	if errors.Is(err, repository.ErrReferralStale) {
		return ErrReferralChanged
	}
	return ErrInternal
}

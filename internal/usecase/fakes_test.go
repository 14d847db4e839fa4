package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"referhub/internal/domain/access"
	"referhub/internal/domain/job"
	"referhub/internal/domain/profile"
	"referhub/internal/domain/referral"
	"referhub/internal/domain/user"
	"referhub/internal/infrastructure/mailer"
	"referhub/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]user.User
	roles map[uuid.UUID][]user.Role
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]user.User{}, roles: map[uuid.UUID][]user.Role{}}
}

func (f *fakeUsers) put(u user.User) user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) CreateWithProfile(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	f.byID[u.ID] = u
	f.roles[u.ID] = append(f.roles[u.ID], u.Role)
	return nil
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.byID {
		if v.Email == email {
			return v, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) UpdateUser(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return user.ErrNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) SetAvatar(_ context.Context, id uuid.UUID, url string) error {
	return f.mutate(id, func(u *user.User) { u.AvatarURL = &url })
}

func (f *fakeUsers) SetBanned(_ context.Context, id uuid.UUID, banned bool) error {
	return f.mutate(id, func(u *user.User) { u.Banned = banned })
}

func (f *fakeUsers) ChangeRole(_ context.Context, id uuid.UUID, role user.Role) error {
	f.mu.Lock()
	f.roles[id] = append(f.roles[id], role)
	f.mu.Unlock()
	return f.mutate(id, func(u *user.User) { u.Role = role })
}

func (f *fakeUsers) List(_ context.Context, flt user.ListFilter) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0)
	for _, v := range f.byID {
		if flt.Role != nil && v.Role != *flt.Role {
			continue
		}
		if flt.Query != "" && !strings.Contains(v.Email, strings.ToLower(flt.Query)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeUsers) mutate(id uuid.UUID, fn func(*user.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	fn(&u)
	f.byID[id] = u
	return nil
}

type fakeProfiles struct {
	mu         sync.Mutex
	posters    map[uuid.UUID]profile.Poster
	referrers  map[uuid.UUID]profile.Referrer
	candidates map[uuid.UUID]profile.Candidate
	admins     map[uuid.UUID]profile.Admin
	sessions   map[uuid.UUID]access.Session
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		posters:    map[uuid.UUID]profile.Poster{},
		referrers:  map[uuid.UUID]profile.Referrer{},
		candidates: map[uuid.UUID]profile.Candidate{},
		admins:     map[uuid.UUID]profile.Admin{},
		sessions:   map[uuid.UUID]access.Session{},
	}
}

func (f *fakeProfiles) LoadSession(_ context.Context, id uuid.UUID) (access.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return access.Session{}, user.ErrNotFound
	}
	return s, nil
}

func (f *fakeProfiles) GetPoster(_ context.Context, id uuid.UUID) (profile.Poster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posters[id]
	if !ok {
		return profile.Poster{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SavePoster(_ context.Context, p profile.Poster) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posters[p.UserID] = p
	return nil
}

func (f *fakeProfiles) SetPosterLogo(_ context.Context, id uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posters[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.CompanyLogoURL = &url
	f.posters[id] = p
	return nil
}

func (f *fakeProfiles) GetReferrer(_ context.Context, id uuid.UUID) (profile.Referrer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.referrers[id]
	if !ok {
		return profile.Referrer{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveReferrer(_ context.Context, p profile.Referrer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if old, ok := f.referrers[p.UserID]; ok {
		p.Verified = old.Verified && p.Verified
	} else {
		p.Verified = false
	}
	f.referrers[p.UserID] = p
	return nil
}

func (f *fakeProfiles) SetReferrerVerified(_ context.Context, id uuid.UUID, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.referrers[id]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.Verified = verified
	f.referrers[id] = p
	return nil
}

func (f *fakeProfiles) GetCandidate(_ context.Context, id uuid.UUID) (profile.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.candidates[id]
	if !ok {
		return profile.Candidate{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveCandidate(_ context.Context, p profile.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates[p.UserID] = p
	return nil
}

func (f *fakeProfiles) GetAdmin(_ context.Context, id uuid.UUID) (profile.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.admins[id]
	if !ok {
		return profile.Admin{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveAdmin(_ context.Context, p profile.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.admins[p.UserID] = p
	return nil
}

type fakeJobs struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]job.Job
	listErr error
	lists   int
	last    repository.JobFilter
}

func newFakeJobs(items ...job.Job) *fakeJobs {
	f := &fakeJobs{byID: map[uuid.UUID]job.Job{}}
	for _, j := range items {
		f.byID[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobs) Update(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[j.ID]; !ok {
		return repository.ErrJobNotFound
	}
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobs) SetStatus(_ context.Context, id uuid.UUID, status job.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.byID[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.Status = status
	f.byID[id] = j
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeJobs) List(_ context.Context, flt repository.JobFilter) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.last = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]job.Job, 0)
	for _, j := range f.byID {
		if flt.OpenOnly && j.Status != job.StatusOpen {
			continue
		}
		if flt.PosterID != nil && j.PosterID != *flt.PosterID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

type fakeReferrals struct {
	mu    sync.Mutex
	views map[uuid.UUID]referral.View
	jobs  *fakeJobs
	users *fakeUsers
}

func newFakeReferrals(jobs *fakeJobs, users *fakeUsers) *fakeReferrals {
	return &fakeReferrals{views: map[uuid.UUID]referral.View{}, jobs: jobs, users: users}
}

func (f *fakeReferrals) Create(ctx context.Context, r referral.Request) error {
	j, err := f.jobs.GetByID(ctx, r.JobID)
	if err != nil {
		return repository.ErrJobNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.views {
		if v.JobID == r.JobID && v.CandidateID == r.CandidateID {
			return repository.ErrReferralExists
		}
	}
	v := referral.View{Request: r, JobTitle: j.Title, CompanyName: j.CompanyName, PosterID: j.PosterID}
	if c, err := f.users.GetUserByID(ctx, r.CandidateID); err == nil {
		v.CandidateName, v.CandidateEmail = c.FullName, c.Email
	}
	f.views[r.ID] = v
	return nil
}

func (f *fakeReferrals) GetView(_ context.Context, id uuid.UUID) (referral.View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[id]
	if !ok {
		return referral.View{}, repository.ErrReferralNotFound
	}
	return v, nil
}

func (f *fakeReferrals) Transition(ctx context.Context, id uuid.UUID, from, to referral.Status, claimant *uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.views[id]
	if !ok || v.Status != from {
		return repository.ErrReferralStale
	}
	if claimant != nil {
		if v.ReferrerID != nil && *v.ReferrerID != *claimant {
			return repository.ErrReferralStale
		}
		c := *claimant
		v.ReferrerID = &c
		if r, err := f.users.GetUserByID(ctx, c); err == nil {
			name, email := r.FullName, r.Email
			v.ReferrerName, v.ReferrerEmail = &name, &email
		}
	}
	v.Status = to
	f.views[id] = v
	return nil
}

func (f *fakeReferrals) ListByCandidate(_ context.Context, id uuid.UUID) ([]referral.View, error) {
	return f.filter(func(v referral.View) bool { return v.CandidateID == id }), nil
}

func (f *fakeReferrals) ListByJob(_ context.Context, id uuid.UUID) ([]referral.View, error) {
	return f.filter(func(v referral.View) bool { return v.JobID == id }), nil
}

func (f *fakeReferrals) ListInbox(_ context.Context, flt repository.ReferralInboxFilter) ([]referral.View, error) {
	return f.filter(func(v referral.View) bool {
		if !strings.EqualFold(v.CompanyName, flt.CompanyName) {
			return false
		}
		if v.ReferrerID != nil && *v.ReferrerID != flt.ReferrerID {
			return false
		}
		return flt.Status == nil || v.Status == *flt.Status
	}), nil
}

func (f *fakeReferrals) filter(keep func(referral.View) bool) []referral.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]referral.View, 0)
	for _, v := range f.views {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

type fakeMessages struct {
	mu    sync.Mutex
	items []referral.Message
}

func (f *fakeMessages) Create(_ context.Context, m referral.Message) (referral.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.CreatedAt = time.Now().UTC()
	f.items = append(f.items, m)
	return m, nil
}

func (f *fakeMessages) List(_ context.Context, id uuid.UUID, _ int, _ *time.Time) ([]referral.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]referral.Message, 0)
	for _, m := range f.items {
		if m.ReferralID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   map[string]bool
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	delete(f.locks, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	f.deleted = append(f.deleted, pattern)
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (f *fakeNotifier) Notify(m mailer.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	topics []string
	last   []byte
}

func (f *fakeBroadcaster) Broadcast(topic string, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	f.last = payload
}

type fakeCompleter struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

type fakeUploader struct {
	url     string
	err     error
	folders []string
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, folder string, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.folders = append(f.folders, folder)
	return f.url, f.err
}

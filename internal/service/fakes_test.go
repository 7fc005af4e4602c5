package service

import (
	"context"
	"sync"
	"sync/atomic"

	"digitomize/internal/apperror"
	"digitomize/internal/domain"
	"digitomize/internal/platform"
)

type fakeFetcher struct {
	platform domain.Platform
	calls    atomic.Int32
	profile  *domain.FetchedProfile
	err      error
}

func (f *fakeFetcher) Platform() domain.Platform { return f.platform }

func (f *fakeFetcher) FetchProfile(_ context.Context, handle string) (*domain.FetchedProfile, error) {
	f.calls.Add(1)
	if handle == "" {
		return nil, nil
	}
	return f.profile, f.err
}

type fakeAdapters map[domain.Platform]*fakeFetcher

func (a fakeAdapters) Profile(p domain.Platform) (platform.ProfileFetcher, bool) {
	f, ok := a[p]
	return f, ok
}

type fakeListings struct {
	contests   []platform.ContestLister
	hackathons []platform.HackathonLister
}

func (l fakeListings) ContestListers() []platform.ContestLister     { return l.contests }
func (l fakeListings) HackathonListers() []platform.HackathonLister { return l.hackathons }

type fakeContestLister struct {
	host     string
	contests []domain.Contest
	err      error
}

func (f fakeContestLister) Host() string { return f.host }

func (f fakeContestLister) FetchContests(context.Context) ([]domain.Contest, error) {
	return append([]domain.Contest(nil), f.contests...), f.err
}

type fakeHackathonLister struct {
	host       string
	hackathons []domain.Hackathon
}

func (f fakeHackathonLister) Host() string { return f.host }

func (f fakeHackathonLister) FetchHackathons(context.Context) ([]domain.Hackathon, error) {
	return append([]domain.Hackathon(nil), f.hackathons...), nil
}

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	saves   int
	saveErr error
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*domain.User)}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	return u, nil
}

func (s *fakeUserStore) UsernameTaken(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *fakeUserStore) EmailTaken(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) ListRanked(_ context.Context, _ domain.Platform) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

package service

import (
	"context"
	"testing"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/constants"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(store *fakeUserStore, adapters fakeAdapters) *ProfileService {
	now := t0
	return &ProfileService{
		users:   store,
		refresh: newRefresher(adapters, store, &now),
		now:     func() time.Time { return t0 },
		logger:  zerolog.Nop(),
	}
}

func TestRegister_UsernameFromEmail(t *testing.T) {
	store := newFakeUserStore()
	s := newProfileService(store, nil)

	user, err := s.Register(context.Background(), RegisterInput{UID: "uid123", Email: "Alice.Smith@Example.com", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice.smith", user.Username)
	assert.Equal(t, "alice.smith@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_FallsBackToUID(t *testing.T) {
	store := newFakeUserStore(&domain.User{Username: "alice", Email: "alice@other.com"})
	s := newProfileService(store, nil)

	user, err := s.Register(context.Background(), RegisterInput{UID: "uid123", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "uid123", user.Username)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore(&domain.User{Username: "alice", Email: "alice@example.com"})
	s := newProfileService(store, nil)

	_, err := s.Register(context.Background(), RegisterInput{UID: "x", Email: "alice@example.com"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = s.Register(context.Background(), RegisterInput{UID: "x", Email: "not-an-email"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func storedUser() *domain.User {
	u := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	*u.EnsureProfile(domain.Codeforces) = domain.PlatformProfile{
		Username: "alice_cf", Rating: intp(1500), Badge: strp("specialist"),
		AttendedContestsCount: intp(10), FetchTime: t0.UnixMilli(), ShowOnWebsite: true,
	}
	u.DigitomizeRating = 1500
	return u
}

func TestUpdateProfile_HandleChangeResetsPlatform(t *testing.T) {
	store := newFakeUserStore(storedUser())
	s := newProfileService(store, nil)

	user, err := s.UpdateProfile(context.Background(), "alice", ProfileUpdate{
		Codeforces: &HandleUpdate{Username: strp("new_cf"), ShowOnWebsite: boolp(true)},
	})
	require.NoError(t, err)

	cf := user.Profile(domain.Codeforces)
	assert.Equal(t, "new_cf", cf.Username)
	assert.Nil(t, cf.Rating)
	assert.Nil(t, cf.Badge)
	assert.Nil(t, cf.AttendedContestsCount)
	assert.Zero(t, cf.FetchTime)
	assert.Zero(t, user.DigitomizeRating)
	assert.Equal(t, 1, user.UpdatesCount)
	assert.Equal(t, 1, store.saves)
}

func TestUpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		update  ProfileUpdate
		message string
	}{
		{
			name:    "handle without visibility",
			update:  ProfileUpdate{CodeChef: &HandleUpdate{Username: strp("chef")}},
			message: "Both 'username' and 'showOnWebsite' properties are required for the 'codechef' platform.",
		},
		{
			name:    "field without data",
			update:  ProfileUpdate{Bio: &FieldUpdate{ShowOnWebsite: boolp(true)}},
			message: "Both 'data' and 'showOnWebsite' properties are required for 'bio'.",
		},
		{
			name:    "bad twitter url",
			update:  ProfileUpdate{Social: &domain.Social{Twitter: "https://evil.example.com/alice"}},
			message: "Invalid twitter URL",
		},
		{
			name:    "not a url",
			update:  ProfileUpdate{Social: &domain.Social{LinkedIn: "linkedin"}},
			message: "Invalid linkedin URL",
		},
		{
			name:    "nothing changed",
			update:  ProfileUpdate{Codeforces: &HandleUpdate{Username: strp("alice_cf"), ShowOnWebsite: boolp(true)}},
			message: "No changes were applied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore(storedUser())
			s := newProfileService(store, nil)

			_, err := s.UpdateProfile(context.Background(), "alice", tt.update)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.message, err.Error())
			assert.Zero(t, store.saves)
		})
	}
}

func TestUpdateProfile_AcceptsValidSocialAndFields(t *testing.T) {
	store := newFakeUserStore(storedUser())
	s := newProfileService(store, nil)

	user, err := s.UpdateProfile(context.Background(), "alice", ProfileUpdate{
		Social: &domain.Social{Twitter: "https://twitter.com/alice", LinkedIn: "https://www.linkedin.com/in/alice"},
		Bio:    &FieldUpdate{Data: strp("competitive programmer"), ShowOnWebsite: boolp(false)},
		Skills: &[]string{"dp", "graphs"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://twitter.com/alice", user.Social.Twitter)
	assert.Equal(t, &domain.PrivateField{Data: "competitive programmer"}, user.Bio)
	assert.Equal(t, []string{"dp", "graphs"}, user.Skills)
	assert.Equal(t, 1500, user.DigitomizeRating)
}

func TestUpdateProfile_DailyLimit(t *testing.T) {
	u := storedUser()
	u.UpdatesDay = t0.Format(time.DateOnly)
	u.UpdatesCount = constants.MaxUpdatesPerDay
	store := newFakeUserStore(u)
	s := newProfileService(store, nil)

	_, err := s.UpdateProfile(context.Background(), "alice", ProfileUpdate{Name: strp("Alice")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	// the counter resets on a new day
	u.UpdatesDay = t0.Add(-24 * time.Hour).Format(time.DateOnly)
	user, err := s.UpdateProfile(context.Background(), "alice", ProfileUpdate{Name: strp("Alice")})
	require.NoError(t, err)
	assert.Equal(t, 1, user.UpdatesCount)
}

func TestGetPublicProfile_HidesPrivateFields(t *testing.T) {
	u := storedUser()
	u.Profile(domain.Codeforces).FetchTime = t0.Add(-13 * time.Hour).UnixMilli()
	*u.EnsureProfile(domain.LeetCode) = domain.PlatformProfile{Username: "hidden", Rating: intp(2100), ShowOnWebsite: false}
	u.Bio = &domain.PrivateField{Data: "hi", ShowOnWebsite: true}
	u.PhoneNumber = &domain.PrivateField{Data: "555", ShowOnWebsite: false}

	cf := &fakeFetcher{platform: domain.Codeforces, profile: &domain.FetchedProfile{Rating: intp(1600)}}
	lc := &fakeFetcher{platform: domain.LeetCode}
	store := newFakeUserStore(u)
	s := newProfileService(store, fakeAdapters{domain.Codeforces: cf, domain.LeetCode: lc})

	view, err := s.GetPublicProfile(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "hi", *view.Bio)
	assert.Nil(t, view.PhoneNumber)
	assert.Contains(t, view.Platforms, domain.Codeforces)
	assert.NotContains(t, view.Platforms, domain.LeetCode)
	assert.Equal(t, 1600, *view.Platforms[domain.Codeforces].Rating)
	assert.Zero(t, lc.calls.Load())
}

func TestGetPublicProfile_UnknownUser(t *testing.T) {
	s := newProfileService(newFakeUserStore(), nil)

	_, err := s.GetPublicProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

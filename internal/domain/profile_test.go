package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestNeedsRefresh(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	ttl := 12 * time.Hour

	tests := []struct {
		name    string
		profile *PlatformProfile
		want    bool
	}{
		{"nil profile", nil, false},
		{"no handle", &PlatformProfile{ShowOnWebsite: true}, false},
		{"fresh", &PlatformProfile{Username: "a", ShowOnWebsite: true, FetchTime: now.Add(-11 * time.Hour).UnixMilli()}, false},
		{"stale", &PlatformProfile{Username: "a", ShowOnWebsite: true, FetchTime: now.Add(-13 * time.Hour).UnixMilli()}, true},
		{"stale but hidden", &PlatformProfile{Username: "a", ShowOnWebsite: false, FetchTime: now.Add(-13 * time.Hour).UnixMilli()}, false},
		{"never fetched", &PlatformProfile{Username: "a", ShowOnWebsite: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.NeedsRefresh(now, ttl))
		})
	}
}

func TestApplyOverwritesAndStamps(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	p := &PlatformProfile{Username: "tourist", Rating: intp(3000), FetchTime: 10}

	p.Apply(&FetchedProfile{Rating: intp(3500), AttendedContestsCount: intp(250), Badge: strp("legendary grandmaster")}, now)

	assert.Equal(t, 3500, *p.Rating)
	assert.Equal(t, 250, *p.AttendedContestsCount)
	assert.Equal(t, "legendary grandmaster", *p.Badge)
	assert.Equal(t, now.UnixMilli(), p.FetchTime)
}

func TestApplyNeverMovesFetchTimeBackwards(t *testing.T) {
	p := &PlatformProfile{FetchTime: 2_000}
	p.Apply(&FetchedProfile{Rating: intp(1)}, time.UnixMilli(1_000))
	assert.Equal(t, int64(2_000), p.FetchTime)
}

func TestChangeHandle(t *testing.T) {
	t.Run("new handle resets fetched data", func(t *testing.T) {
		p := &PlatformProfile{
			Username:              "old_chef",
			ShowOnWebsite:         true,
			Rating:                intp(1800),
			AttendedContestsCount: intp(10),
			Badge:                 strp("4★"),
			FetchTime:             time.Now().UnixMilli(),
		}

		changed := ChangeHandle(p, "new_chef", false)

		assert.True(t, changed)
		assert.Equal(t, "new_chef", p.Username)
		assert.False(t, p.ShowOnWebsite)
		assert.Nil(t, p.Rating)
		assert.Nil(t, p.AttendedContestsCount)
		assert.Nil(t, p.Badge)
		assert.Zero(t, p.FetchTime)
	})

	t.Run("same handle keeps data", func(t *testing.T) {
		fetched := time.Now().UnixMilli()
		p := &PlatformProfile{
			Username:      "old_chef",
			ShowOnWebsite: true,
			Rating:        intp(1800),
			Badge:         strp("4★"),
			FetchTime:     fetched,
		}

		changed := ChangeHandle(p, "old_chef", false)

		assert.False(t, changed)
		assert.False(t, p.ShowOnWebsite)
		assert.Equal(t, 1800, *p.Rating)
		assert.Equal(t, "4★", *p.Badge)
		assert.Equal(t, fetched, p.FetchTime)
	})
}

func TestParsePlatform(t *testing.T) {
	p, ok := ParsePlatform("leetcode")
	assert.True(t, ok)
	assert.Equal(t, LeetCode, p)

	_, ok = ParsePlatform("topcoder")
	assert.False(t, ok)
}

func TestContestEndTime(t *testing.T) {
	c := Contest{StartTimeUnix: 1_704_110_400, Duration: 120}
	assert.Equal(t, int64(1_704_117_600), c.EndTimeUnix())
}

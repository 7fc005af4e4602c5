// Package platform holds one adapter per external site. Adapters only fetch
// and normalize; persistence belongs to the caller.
package platform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"digitomize/internal/api"
	"digitomize/internal/apperror"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

type ProfileFetcher interface {
	Platform() domain.Platform
	// FetchProfile returns (nil, nil) for an empty handle without a network
	// call. Failures unwrap to apperror.ErrNotFound, ErrParse, ErrNetwork or
	// ErrNoContestData.
	FetchProfile(ctx context.Context, handle string) (*domain.FetchedProfile, error)
}

type ContestLister interface {
	Host() string
	// FetchContests degrades a network failure to an empty list.
	FetchContests(ctx context.Context) ([]domain.Contest, error)
}

type HackathonLister interface {
	Host() string
	FetchHackathons(ctx context.Context) ([]domain.Hackathon, error)
}

// Registry is the static lookup table of adapters.
type Registry struct {
	profiles   map[domain.Platform]ProfileFetcher
	contests   []ContestLister
	hackathons []HackathonLister
}

func NewRegistry(profiles []ProfileFetcher, contests []ContestLister, hackathons []HackathonLister) *Registry {
	r := &Registry{
		profiles:   make(map[domain.Platform]ProfileFetcher, len(profiles)),
		contests:   contests,
		hackathons: hackathons,
	}
	for _, p := range profiles {
		r.profiles[p.Platform()] = p
	}
	return r
}

// NewDefaultRegistry wires every production adapter.
func NewDefaultRegistry(client *api.Client, logger zerolog.Logger) *Registry {
	codeforces := NewCodeforces(client, logger)
	codechef := NewCodeChef(client, logger)
	leetcode := NewLeetCode(client, logger)
	atcoder := NewAtCoder(client, logger)

	return NewRegistry(
		[]ProfileFetcher{codeforces, codechef, leetcode, atcoder},
		[]ContestLister{codeforces, codechef, leetcode, atcoder, NewGeeksforGeeks(client, logger)},
		[]HackathonLister{NewDevfolio(client, logger), NewDevpost(client, logger), NewUnstop(client, logger)},
	)
}

func (r *Registry) Profile(p domain.Platform) (ProfileFetcher, bool) {
	f, ok := r.profiles[p]
	return f, ok
}

func (r *Registry) ContestListers() []ContestLister {
	return r.contests
}

func (r *Registry) HackathonListers() []HackathonLister {
	return r.hackathons
}

// degrade turns a network failure of a list fetch into an empty result.
func degrade(logger zerolog.Logger, host string, err error) error {
	if errors.Is(err, apperror.ErrNetwork) {
		logger.Warn().Err(err).Str("host", host).Msg("listing unavailable, skipping")
		return nil
	}
	return err
}

func ptr[T any](v T) *T {
	return &v
}

// atoi parses upstream numbers that may arrive as "1,234" or " 56 ".
func atoi(s string) (int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return n, nil
}

func parseTime(layout, value string, loc *time.Location) (int64, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), loc)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/config"
	"digitomize/internal/constants"
	"digitomize/internal/domain"
	"digitomize/internal/rating"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type RefreshService struct {
	adapters ProfileSource
	users    UserStore
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewRefreshService(adapters ProfileSource, users UserStore, cfg *config.Config, logger zerolog.Logger) *RefreshService {
	return &RefreshService{
		adapters: adapters,
		users:    users,
		ttl:      cfg.StalenessTTL,
		timeout:  cfg.ExternalAPITimeout,
		now:      time.Now,
		logger:   logger.With().Str("service", "refresh").Logger(),
	}
}

type fetchOutcome struct {
	platform domain.Platform
	fetched  *domain.FetchedProfile
	err      error
}

// RefreshUserIfStale refetches every visible platform whose data is older
// than the TTL. Adapter failures keep the stale data and its timestamp so
// the next call retries. When anything changed the composite rating is
// recomputed and the user is persisted once.
func (s *RefreshService) RefreshUserIfStale(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := s.now()

	var outcomes []*fetchOutcome
	g := new(errgroup.Group)
	g.SetLimit(constants.RefreshConcurrency)

	for _, p := range domain.ProfilePlatforms {
		profile := user.Profile(p)
		if !profile.NeedsRefresh(now, s.ttl) {
			continue
		}
		fetcher, ok := s.adapters.Profile(p)
		if !ok {
			continue
		}

		out := &fetchOutcome{platform: p}
		outcomes = append(outcomes, out)
		handle := profile.Username

		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			out.fetched, out.err = fetcher.FetchProfile(fetchCtx, handle)
			return nil
		})
	}

	if len(outcomes) == 0 {
		return user, nil
	}
	_ = g.Wait()

	changed := false
	for _, out := range outcomes {
		profile := user.Profile(out.platform)
		log := s.logger.With().
			Str("user", user.Username).
			Str("platform", string(out.platform)).
			Str("handle", profile.Username).
			Logger()

		switch {
		case out.err == nil:
			profile.Apply(out.fetched, now)
			changed = true
		case errors.Is(out.err, apperror.ErrNoContestData):
			log.Debug().Msg("no contest data")
			profile.Apply(nil, now)
			changed = true
		default:
			log.Warn().Err(out.err).Msg("refresh failed, keeping cached data")
		}
	}

	if !changed {
		return user, nil
	}

	user.DigitomizeRating = rating.Compute(user)
	user.UpdatedAt = now

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user", user.Username).Msg("failed to persist refreshed user")
		return user, fmt.Errorf("failed to persist refreshed user: %w", err)
	}

	s.logger.Info().
		Str("user", user.Username).
		Int("platforms", len(outcomes)).
		Int("digitomize_rating", user.DigitomizeRating).
		Msg("user refreshed")
	return user, nil
}

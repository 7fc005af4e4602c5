package service

import (
	"context"
	"fmt"

	"digitomize/internal/domain"
	"digitomize/internal/leaderboard"

	"github.com/rs/zerolog"
)

type LeaderboardService struct {
	users  UserStore
	logger zerolog.Logger
}

func NewLeaderboardService(users UserStore, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		users:  users,
		logger: logger.With().Str("service", "leaderboard").Logger(),
	}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, filter domain.Platform, page int) (*leaderboard.Page, error) {
	users, err := s.users.ListRanked(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	result := leaderboard.Rank(users, filter, page)
	s.logger.Debug().
		Str("platform", string(filter)).
		Int("page", result.CurrentPage).
		Int("total_users", result.TotalUsers).
		Msg("leaderboard served")
	return &result, nil
}

func (s *LeaderboardService) GetUserRank(ctx context.Context, username string, filter domain.Platform) (*leaderboard.Position, error) {
	users, err := s.users.ListRanked(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	pos := leaderboard.Find(users, filter, username)
	return &pos, nil
}

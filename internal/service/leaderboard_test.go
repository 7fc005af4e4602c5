package service

import (
	"context"
	"testing"

	"digitomize/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService(t *testing.T) {
	store := newFakeUserStore(
		&domain.User{Username: "a", DigitomizeRating: 2100},
		&domain.User{Username: "b", DigitomizeRating: 1900},
		&domain.User{Username: "c", DigitomizeRating: 1700},
		&domain.User{Username: "d", DigitomizeRating: 1500},
		&domain.User{Username: "e", DigitomizeRating: 0},
	)
	s := NewLeaderboardService(store, zerolog.Nop())
	ctx := context.Background()

	page, err := s.GetLeaderboard(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalUsers)
	require.Len(t, page.Leaderboard, 1)
	assert.Equal(t, "d", page.Leaderboard[0].Username)

	pos, err := s.GetUserRank(ctx, "c", "")
	require.NoError(t, err)
	require.NotNil(t, pos.UserPosition)
	assert.Equal(t, 3, *pos.UserPosition)

	pos, err = s.GetUserRank(ctx, "e", "")
	require.NoError(t, err)
	assert.Nil(t, pos.UserPosition)
}

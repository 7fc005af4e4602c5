package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"digitomize/internal/apperror"
	"digitomize/internal/config"
	"digitomize/internal/database"
	"digitomize/internal/db"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "digitomize.db")}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB, db.New(sqlDB)
}

func contest(host, vanity string, start int64, duration int) domain.Contest {
	return domain.Contest{
		Host:          host,
		Name:          host + " " + vanity,
		Vanity:        vanity,
		URL:           "https://example.com/" + vanity,
		StartTimeUnix: start,
		Duration:      duration,
	}
}

func TestContestRepository_DuplicateDoesNotAbortBatch(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := NewContestRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	_, err := repo.InsertUpcoming(ctx, []domain.Contest{contest("codeforces", "1", 100, 60)})
	require.NoError(t, err)

	batch := []domain.Contest{
		contest("codeforces", "1", 100, 60),
		contest("codeforces", "2", 200, 60),
		contest("leetcode", "1", 300, 90),
		contest("atcoder", "abc1", 400, 100),
	}
	result, err := repo.InsertUpcoming(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, BulkResult{Inserted: 3, Duplicates: 1}, result)

	upcoming, err := repo.ListUpcoming(ctx, "")
	require.NoError(t, err)
	assert.Len(t, upcoming, 4)
}

func TestContestRepository_DuplicateWithinBatch(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := NewContestRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	result, err := repo.InsertAll(ctx, []domain.Contest{
		contest("codechef", "START1", 100, 120),
		contest("codechef", "START1", 100, 120),
		contest("codechef", "START2", 200, 120),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Duplicates)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestContestRepository_PurgeEnded(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := NewContestRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()
	now := time.Unix(10_000, 0)

	_, err := repo.InsertUpcoming(ctx, []domain.Contest{
		contest("codeforces", "ended", 1_000, 60),   // ends at 4600
		contest("codeforces", "running", 9_000, 60), // ends at 12600
		contest("codeforces", "future", 20_000, 60),
	})
	require.NoError(t, err)
	_, err = repo.InsertAll(ctx, []domain.Contest{contest("codeforces", "ended", 1_000, 60)})
	require.NoError(t, err)

	purged, err := repo.PurgeEnded(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	upcoming, err := repo.ListUpcoming(ctx, "codeforces")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "running", upcoming[0].Vanity)
	assert.Equal(t, "future", upcoming[1].Vanity)

	archived, err := repo.Get(ctx, "codeforces", "ended")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/ended", archived.URL)

	_, err = repo.Get(ctx, "codeforces", "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHackathonRepository_PurgeClosed(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := NewHackathonRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()
	now := time.Unix(50_000, 0)

	closed := domain.Hackathon{Host: "devfolio", Vanity: "closed", Name: "Closed", URL: "u",
		RegisterationStartTimeUnix: 1_000, RegisterationEndTimeUnix: 49_999,
		HackathonStartTimeUnix: 60_000, HackathonEndTimeUnix: 70_000}
	open := domain.Hackathon{Host: "devpost", Vanity: "open", Name: "Open", URL: "u",
		RegisterationStartTimeUnix: 2_000, RegisterationEndTimeUnix: 50_001,
		HackathonStartTimeUnix: 60_000, HackathonEndTimeUnix: 70_000}

	_, err := repo.InsertUpcoming(ctx, []domain.Hackathon{closed, open})
	require.NoError(t, err)
	_, err = repo.InsertAll(ctx, []domain.Hackathon{closed, open})
	require.NoError(t, err)

	purged, err := repo.PurgeClosed(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	upcoming, err := repo.ListUpcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "open", upcoming[0].Vanity)

	all, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)

	// a second purge finds nothing, the row does not come back
	purged, err = repo.PurgeClosed(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestClassifyInsert_UniqueViolationIsDuplicateKey(t *testing.T) {
	_, queries := newTestDB(t)
	ctx := context.Background()
	params := db.InsertContestParams{Host: "codeforces", Vanity: "1", Name: "Round 1", Url: "https://codeforces.com/contests/1"}

	require.NoError(t, queries.InsertUpcomingContest(ctx, params))
	err := classifyInsert("contest", "codeforces/1", queries.InsertUpcomingContest(ctx, params))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "codeforces/1")
}

func TestClassifyInsert_OtherErrorsPassThrough(t *testing.T) {
	assert.NoError(t, classifyInsert("contest", "k", nil))

	err := classifyInsert("contest", "k", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, apperror.ErrDuplicateKey)
}

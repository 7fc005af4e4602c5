package repository

import (
	"context"
	"database/sql"
	"time"

	"digitomize/internal/db"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

type ContestRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewContestRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ContestRepository {
	return &ContestRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger.With().Str("repository", "contest").Logger(),
	}
}

func contestKey(c domain.Contest) string {
	return c.Host + "/" + c.Vanity
}

func contestParams(c domain.Contest, now int64) db.InsertContestParams {
	return db.InsertContestParams{
		Host:          c.Host,
		Vanity:        c.Vanity,
		Name:          c.Name,
		Url:           c.URL,
		StartTimeUnix: c.StartTimeUnix,
		Duration:      int64(c.Duration),
		CreatedAt:     now,
	}
}

// InsertUpcoming adds contests to the upcoming set, skipping known ones.
func (r *ContestRepository) InsertUpcoming(ctx context.Context, contests []domain.Contest) (BulkResult, error) {
	now := time.Now().Unix()
	return insertUnordered(ctx, r.db, r.queries, r.logger.With().Str("set", "upcoming").Logger(), "contest", contests, contestKey,
		func(ctx context.Context, q *db.Queries, c domain.Contest) error {
			return q.InsertUpcomingContest(ctx, contestParams(c, now))
		})
}

// InsertAll appends contests to the archive, skipping known ones.
func (r *ContestRepository) InsertAll(ctx context.Context, contests []domain.Contest) (BulkResult, error) {
	now := time.Now().Unix()
	return insertUnordered(ctx, r.db, r.queries, r.logger.With().Str("set", "all").Logger(), "contest", contests, contestKey,
		func(ctx context.Context, q *db.Queries, c domain.Contest) error {
			return q.InsertAllContest(ctx, contestParams(c, now))
		})
}

// PurgeEnded removes upcoming contests that finished before now.
func (r *ContestRepository) PurgeEnded(ctx context.Context, now time.Time) (int64, error) {
	return r.queries.DeleteEndedUpcomingContests(ctx, now.Unix())
}

// ListUpcoming returns upcoming contests, optionally for one host.
func (r *ContestRepository) ListUpcoming(ctx context.Context, host string) ([]domain.Contest, error) {
	var (
		rows []db.UpcomingContest
		err  error
	)
	if host == "" {
		rows, err = r.queries.ListUpcomingContests(ctx)
	} else {
		rows, err = r.queries.ListUpcomingContestsByHost(ctx, host)
	}
	if err != nil {
		return nil, err
	}

	contests := make([]domain.Contest, len(rows))
	for i, row := range rows {
		contests[i] = domain.Contest{
			Host:          row.Host,
			Name:          row.Name,
			Vanity:        row.Vanity,
			URL:           row.Url,
			StartTimeUnix: row.StartTimeUnix,
			Duration:      int(row.Duration),
		}
	}
	return contests, nil
}

// Get looks a contest up in the archive.
func (r *ContestRepository) Get(ctx context.Context, host, vanity string) (*domain.Contest, error) {
	row, err := r.queries.GetContest(ctx, db.GetContestParams{Host: host, Vanity: vanity})
	if err != nil {
		return nil, notFound(err, "contest", host+"/"+vanity)
	}
	return &domain.Contest{
		Host:          row.Host,
		Name:          row.Name,
		Vanity:        row.Vanity,
		URL:           row.Url,
		StartTimeUnix: row.StartTimeUnix,
		Duration:      int(row.Duration),
	}, nil
}

func (r *ContestRepository) CountAll(ctx context.Context) (int64, error) {
	return r.queries.CountAllContests(ctx)
}

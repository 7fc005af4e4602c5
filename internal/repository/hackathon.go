package repository

import (
	"context"
	"database/sql"
	"time"

	"digitomize/internal/db"
	"digitomize/internal/domain"

	"github.com/rs/zerolog"
)

type HackathonRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewHackathonRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *HackathonRepository {
	return &HackathonRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger.With().Str("repository", "hackathon").Logger(),
	}
}

func hackathonKey(h domain.Hackathon) string {
	return h.Host + "/" + h.Vanity
}

func hackathonParams(h domain.Hackathon, now int64) db.InsertHackathonParams {
	return db.InsertHackathonParams{
		Host:                       h.Host,
		Vanity:                     h.Vanity,
		Name:                       h.Name,
		Url:                        h.URL,
		RegisterationStartTimeUnix: h.RegisterationStartTimeUnix,
		RegisterationEndTimeUnix:   h.RegisterationEndTimeUnix,
		HackathonStartTimeUnix:     h.HackathonStartTimeUnix,
		HackathonEndTimeUnix:       h.HackathonEndTimeUnix,
		CreatedAt:                  now,
	}
}

func (r *HackathonRepository) InsertUpcoming(ctx context.Context, hackathons []domain.Hackathon) (BulkResult, error) {
	now := time.Now().Unix()
	return insertUnordered(ctx, r.db, r.queries, r.logger.With().Str("set", "upcoming").Logger(), "hackathon", hackathons, hackathonKey,
		func(ctx context.Context, q *db.Queries, h domain.Hackathon) error {
			return q.InsertUpcomingHackathon(ctx, hackathonParams(h, now))
		})
}

func (r *HackathonRepository) InsertAll(ctx context.Context, hackathons []domain.Hackathon) (BulkResult, error) {
	now := time.Now().Unix()
	return insertUnordered(ctx, r.db, r.queries, r.logger.With().Str("set", "all").Logger(), "hackathon", hackathons, hackathonKey,
		func(ctx context.Context, q *db.Queries, h domain.Hackathon) error {
			return q.InsertAllHackathon(ctx, hackathonParams(h, now))
		})
}

// PurgeClosed removes upcoming hackathons whose registration ended before now.
func (r *HackathonRepository) PurgeClosed(ctx context.Context, now time.Time) (int64, error) {
	return r.queries.DeleteClosedUpcomingHackathons(ctx, now.Unix())
}

func (r *HackathonRepository) ListUpcoming(ctx context.Context) ([]domain.Hackathon, error) {
	rows, err := r.queries.ListUpcomingHackathons(ctx)
	if err != nil {
		return nil, err
	}

	hackathons := make([]domain.Hackathon, len(rows))
	for i, row := range rows {
		hackathons[i] = domain.Hackathon{
			Host:                       row.Host,
			Name:                       row.Name,
			Vanity:                     row.Vanity,
			URL:                        row.Url,
			RegisterationStartTimeUnix: row.RegisterationStartTimeUnix,
			RegisterationEndTimeUnix:   row.RegisterationEndTimeUnix,
			HackathonStartTimeUnix:     row.HackathonStartTimeUnix,
			HackathonEndTimeUnix:       row.HackathonEndTimeUnix,
		}
	}
	return hackathons, nil
}

func (r *HackathonRepository) CountAll(ctx context.Context) (int64, error) {
	return r.queries.CountAllHackathons(ctx)
}

package fx

import (
	"context"
	"database/sql"

	"digitomize/internal/api"
	"digitomize/internal/config"
	"digitomize/internal/constants"
	"digitomize/internal/database"
	"digitomize/internal/db"
	"digitomize/internal/logger"
	"digitomize/internal/platform"
	"digitomize/internal/repository"
	"digitomize/internal/scheduler"
	"digitomize/internal/server"
	"digitomize/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideScheduler registers the periodic sync and purge jobs.
func ProvideScheduler(cfg *config.Config, sync *service.SyncService, logger zerolog.Logger) *scheduler.Scheduler {
	s := scheduler.New(cfg.SyncOnStart, constants.SyncCycleTimeout, logger)

	s.Register(scheduler.Task{
		Name:     "contest-purge",
		Interval: cfg.Intervals.ContestPurge,
		Run: func(ctx context.Context) error {
			_, err := sync.PurgeContests(ctx)
			return err
		},
	})
	s.Register(scheduler.Task{
		Name:     "contest-sync",
		Interval: cfg.Intervals.ContestSync,
		Run: func(ctx context.Context) error {
			sync.SyncContests(ctx)
			return nil
		},
	})
	s.Register(scheduler.Task{
		Name:     "hackathon-purge",
		Interval: cfg.Intervals.HackathonPurge,
		Run: func(ctx context.Context) error {
			_, err := sync.PurgeHackathons(ctx)
			return err
		},
	})
	s.Register(scheduler.Task{
		Name:     "hackathon-sync",
		Interval: cfg.Intervals.HackathonSync,
		Run: func(ctx context.Context) error {
			sync.SyncHackathons(ctx)
			return nil
		},
	})

	return s
}

var Module = fx.Options(
	fx.Provide(config.Load),
	logger.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewUserRepository, fx.As(new(service.UserStore))),
		fx.Annotate(repository.NewContestRepository, fx.As(new(service.ContestStore))),
		fx.Annotate(repository.NewHackathonRepository, fx.As(new(service.HackathonStore))),
	),
	// upstream platforms
	fx.Provide(api.NewClient),
	fx.Provide(platform.NewDefaultRegistry),
	fx.Provide(
		func(r *platform.Registry) service.ProfileSource { return r },
		func(r *platform.Registry) service.ListingSource { return r },
	),
	// svc
	fx.Provide(service.NewRefreshService),
	fx.Provide(service.NewSyncService),
	fx.Provide(
		fx.Annotate(service.NewProfileService, fx.As(new(server.Profiles))),
		fx.Annotate(service.NewLeaderboardService, fx.As(new(server.Rankings))),
		fx.Annotate(service.NewCatalogService, fx.As(new(server.Catalog))),
	),
	fx.Provide(ProvideScheduler),
	// server
	fx.Provide(server.New),
)

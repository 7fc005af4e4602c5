package service

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"digitomize/internal/domain"
	"digitomize/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// HostReport is the outcome of one source in a sync cycle.
type HostReport struct {
	Fetched    int
	Inserted   int
	Duplicates int
	Err        error
}

type SyncReport struct {
	Purged   int64
	Archived int64 // size of the archive after the cycle
	Hosts    map[string]HostReport
}

type SyncService struct {
	listings   ListingSource
	contests   ContestStore
	hackathons HackathonStore
	now        func() time.Time
	logger     zerolog.Logger
}

func NewSyncService(listings ListingSource, contests ContestStore, hackathons HackathonStore, logger zerolog.Logger) *SyncService {
	return &SyncService{
		listings:   listings,
		contests:   contests,
		hackathons: hackathons,
		now:        time.Now,
		logger:     logger.With().Str("service", "sync").Logger(),
	}
}

// PurgeContests drops upcoming contests that have ended.
func (s *SyncService) PurgeContests(ctx context.Context) (int64, error) {
	n, err := s.contests.PurgeEnded(ctx, s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge contests")
		return 0, err
	}
	s.logger.Info().Int64("count", n).Msg("purged ended contests")
	return n, nil
}

// PurgeHackathons drops upcoming hackathons whose registration has closed.
func (s *SyncService) PurgeHackathons(ctx context.Context) (int64, error) {
	n, err := s.hackathons.PurgeClosed(ctx, s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge hackathons")
		return 0, err
	}
	s.logger.Info().Int64("count", n).Msg("purged closed hackathons")
	return n, nil
}

func (s *SyncService) SyncContests(ctx context.Context) SyncReport {
	purged, _ := s.PurgeContests(ctx)

	listers := s.listings.ContestListers()
	sources := make([]source[domain.Contest], len(listers))
	for i, l := range listers {
		sources[i] = source[domain.Contest]{host: l.Host(), fetch: l.FetchContests}
	}

	hosts := syncSources(ctx, s.logger.With().Str("kind", "contests").Logger(), sources,
		func(c domain.Contest) int64 { return c.StartTimeUnix },
		func(c domain.Contest) string { return c.Vanity },
		s.contests.InsertUpcoming, s.contests.InsertAll)

	return s.report(ctx, "contests", purged, hosts, s.contests.CountAll)
}

func (s *SyncService) SyncHackathons(ctx context.Context) SyncReport {
	purged, _ := s.PurgeHackathons(ctx)

	listers := s.listings.HackathonListers()
	sources := make([]source[domain.Hackathon], len(listers))
	for i, l := range listers {
		sources[i] = source[domain.Hackathon]{host: l.Host(), fetch: l.FetchHackathons}
	}

	hosts := syncSources(ctx, s.logger.With().Str("kind", "hackathons").Logger(), sources,
		func(h domain.Hackathon) int64 { return h.RegisterationStartTimeUnix },
		func(h domain.Hackathon) string { return h.Vanity },
		s.hackathons.InsertUpcoming, s.hackathons.InsertAll)

	return s.report(ctx, "hackathons", purged, hosts, s.hackathons.CountAll)
}

func (s *SyncService) report(
	ctx context.Context,
	kind string,
	purged int64,
	hosts map[string]HostReport,
	countAll func(context.Context) (int64, error),
) SyncReport {
	report := SyncReport{Purged: purged, Hosts: hosts}

	archived, err := countAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to count archive")
	}
	report.Archived = archived

	failed := 0
	for _, h := range hosts {
		if h.Err != nil {
			failed++
		}
	}
	s.logger.Info().
		Str("kind", kind).
		Int64("purged", purged).
		Int64("archived", archived).
		Int("hosts", len(hosts)).
		Int("failed_hosts", failed).
		Msg("sync cycle finished")
	return report
}

type source[T any] struct {
	host  string
	fetch func(context.Context) ([]T, error)
}

type insertFunc[T any] func(context.Context, []T) (repository.BulkResult, error)

// syncSources fetches every source concurrently and stores each list in the
// upcoming and all sets. Sources are isolated: a failure is recorded in that
// host's report and never affects the others.
func syncSources[T any](
	ctx context.Context,
	logger zerolog.Logger,
	sources []source[T],
	startKey func(T) int64,
	vanity func(T) string,
	insertUpcoming, insertAll insertFunc[T],
) map[string]HostReport {
	var (
		mu      sync.Mutex
		reports = make(map[string]HostReport, len(sources))
	)

	g := new(errgroup.Group)
	for _, src := range sources {
		g.Go(func() error {
			report := syncSource(ctx, logger.With().Str("host", src.host).Logger(), src, startKey, vanity, insertUpcoming, insertAll)
			mu.Lock()
			reports[src.host] = report
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func syncSource[T any](
	ctx context.Context,
	logger zerolog.Logger,
	src source[T],
	startKey func(T) int64,
	vanity func(T) string,
	insertUpcoming, insertAll insertFunc[T],
) HostReport {
	items, err := src.fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch listing")
		return HostReport{Err: err}
	}

	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Or(cmp.Compare(startKey(a), startKey(b)), cmp.Compare(vanity(a), vanity(b)))
	})

	report := HostReport{Fetched: len(items)}
	if len(items) == 0 {
		logger.Debug().Msg("nothing to sync")
		return report
	}

	upcoming, err := insertUpcoming(ctx, items)
	if err != nil {
		logger.Error().Err(err).Msg("failed to insert into upcoming set")
		report.Err = err
	}
	report.Inserted = upcoming.Inserted
	report.Duplicates = upcoming.Duplicates

	if _, err := insertAll(ctx, items); err != nil {
		logger.Error().Err(err).Msg("failed to insert into archive")
		if report.Err == nil {
			report.Err = err
		}
	}

	logger.Info().
		Int("fetched", report.Fetched).
		Int("inserted", report.Inserted).
		Int("duplicates", report.Duplicates).
		Msg("listing synced")
	return report
}

// Package scheduler runs named periodic tasks, each in its own goroutine.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs every task once on Start and then on its interval. A task
// never overlaps with itself; different tasks run independently. Stop waits
// for in-flight runs to finish.
type Scheduler struct {
	tasks        []Task
	runOnStart   bool
	cycleTimeout time.Duration
	logger       zerolog.Logger
	stop         chan struct{}
	wg           sync.WaitGroup
}

func New(runOnStart bool, cycleTimeout time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		runOnStart:   runOnStart,
		cycleTimeout: cycleTimeout,
		logger:       logger.With().Str("component", "scheduler").Logger(),
		stop:         make(chan struct{}),
	}
}

// Register adds a task. Tasks registered after Start are not run.
func (s *Scheduler) Register(t Task) {
	s.tasks = append(s.tasks, t)
}

func (s *Scheduler) Start() {
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(t)
	}
	s.logger.Info().Int("tasks", len(s.tasks)).Msg("scheduler started")
}

func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) loop(t Task) {
	defer s.wg.Done()

	if s.runOnStart {
		s.run(t)
	}

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.logger.Debug().Str("task", t.Name).Msg("task stopping")
			return
		case <-ticker.C:
			s.run(t)
		}
	}
}

// run executes one cycle to completion. Stop does not cancel it; only the
// cycle timeout does.
func (s *Scheduler) run(t Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cycleTimeout)
	defer cancel()

	start := time.Now()
	if err := t.Run(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("task", t.Name).
			Dur("elapsed", time.Since(start)).
			Msg("task failed")
		return
	}
	s.logger.Debug().
		Str("task", t.Name).
		Dur("elapsed", time.Since(start)).
		Msg("task completed")
}

// Package scheduler drives recurring syncs for the daemon. Each sync kind
// runs as its own job so one slow or failing kind never delays the others.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/config"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/pipeline"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/store"
)

// resultsLookback bounds each recurring results sync. A week comfortably
// covers postponed games finalized late.
const resultsLookback = 7 * 24 * time.Hour

// jobTimeout caps one sync run.
const jobTimeout = 10 * time.Minute

type Scheduler struct {
	s      gocron.Scheduler
	orch   *pipeline.Orchestrator
	store  store.Store
	cfg    *config.Config
	logger *slog.Logger
}

func New(orch *pipeline.Orchestrator, st store.Store, cfg *config.Config, logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{
		s:      s,
		orch:   orch,
		store:  st,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Start registers the recurring jobs and begins running them. The first run
// of each job fires immediately.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		task func()
	}{
		{"roster", s.syncRoster},
		{"schedule", s.syncSchedule},
		{"results", s.syncResults},
		{"gamelogs", s.syncGameLogs},
	}
	for _, j := range jobs {
		_, err := s.s.NewJob(
			gocron.DurationJob(s.cfg.SyncInterval),
			gocron.NewTask(j.task),
			gocron.WithName(j.name),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("create %s job: %w", j.name, err)
		}
	}

	s.s.Start()
	s.logger.Info("scheduler started", "interval", s.cfg.SyncInterval)
	return nil
}

// Shutdown stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Shutdown() error {
	return s.s.Shutdown()
}

func (s *Scheduler) syncRoster() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.orch.SyncRoster(ctx); err != nil {
		s.logger.Error("scheduled roster sync failed", "error", err)
	}
}

func (s *Scheduler) syncSchedule() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.orch.SyncSchedule(ctx, s.cfg.Season); err != nil {
		s.logger.Error("scheduled schedule sync failed", "error", err)
	}
}

func (s *Scheduler) syncResults() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now().UTC()
	dr := pipeline.DateRange{From: now.Add(-resultsLookback), To: now}
	if _, err := s.orch.SyncResultsAndWeather(ctx, s.cfg.Season, dr); err != nil {
		s.logger.Error("scheduled results sync failed", "error", err)
	}
}

func (s *Scheduler) syncGameLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	players, err := s.store.RosterEntries(ctx)
	if err != nil {
		s.logger.Error("scheduled game log sync failed", "error", err)
		return
	}
	for _, p := range players {
		if _, err := s.orch.SyncPlayerGameLog(ctx, p.ExternalID, s.cfg.Season); err != nil {
			s.logger.Error("scheduled game log sync failed", "player", p.Name, "error", err)
		}
	}
}

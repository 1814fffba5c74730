// Package scheduler fires the recurring sync jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

const (
	DefaultNightlySpec = "0 2 * * *"
	DefaultWeeklySpec  = "0 3 * * 0"
)

// Jobs is the subset of the job service the scheduler triggers.
type Jobs interface {
	NightlySyncGames(ctx context.Context) synclog.Entry
	WeeklySyncPlayerStats(ctx context.Context) synclog.Entry
}

type Config struct {
	Location    *time.Location
	NightlySpec string
	WeeklySpec  string
}

// Scheduler wraps a cron runner. Overlapping firings of the same job on this
// instance are skipped.
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	logger *logging.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg Config, jobs Jobs, logger *logging.Logger) (*Scheduler, error) {
	if jobs == nil {
		return nil, fmt.Errorf("scheduler jobs are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("scheduler")
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.NightlySpec == "" {
		cfg.NightlySpec = DefaultNightlySpec
	}
	if cfg.WeeklySpec == "" {
		cfg.WeeklySpec = DefaultWeeklySpec
	}

	cronLogger := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		jobs:   jobs,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := s.cron.AddFunc(cfg.NightlySpec, s.wrap(synclog.JobNightlySyncGames, jobs.NightlySyncGames)); err != nil {
		cancel()
		return nil, fmt.Errorf("add nightly job %q: %w", cfg.NightlySpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.WeeklySpec, s.wrap(synclog.JobWeeklySyncPlayerStats, jobs.WeeklySyncPlayerStats)); err != nil {
		cancel()
		return nil, fmt.Errorf("add weekly job %q: %w", cfg.WeeklySpec, err)
	}

	return s, nil
}

func (s *Scheduler) wrap(name string, fn func(context.Context) synclog.Entry) func() {
	return func() {
		s.logger.Info("scheduled job firing", "job", name)
		entry := fn(s.ctx)
		s.logger.Info("scheduled job finished", "job", name, "success", entry.Success, "run_id", entry.RunID)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("scheduled job registered", "entry_id", int(e.ID), "next", e.Next)
	}
}

// Stop halts new firings, cancels running jobs and waits for them or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries reports the next fire time per job, in registration order.
func (s *Scheduler) Entries() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Next)
	}
	return out
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron "+msg, append(keysAndValues, "error", err)...)
}

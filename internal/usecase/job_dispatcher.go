package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
)

// JobRunner is implemented by SyncJobService.
type JobRunner interface {
	NightlySyncGames(ctx context.Context) synclog.Entry
	WeeklySyncPlayerStats(ctx context.Context) synclog.Entry
	HistoricalBackfillStats(ctx context.Context, seasons []int, numSeasons int) synclog.Entry
}

// BackfillInput selects the seasons of an asynchronous backfill. Seasons wins
// over NumSeasons when both are set.
type BackfillInput struct {
	Seasons    []int
	NumSeasons int
}

// JobDispatcher runs jobs on a bounded, non-blocking worker pool. A trigger
// that finds every worker busy is rejected instead of queued.
type JobDispatcher struct {
	jobs   JobRunner
	pool   *ants.Pool
	ctx    context.Context
	cancel context.CancelFunc
	logger *logging.Logger
}

func NewJobDispatcher(jobs JobRunner, workers int, logger *logging.Logger) (*JobDispatcher, error) {
	if jobs == nil {
		return nil, fmt.Errorf("job runner is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(rec interface{}) {
			logger.Error("job worker panic", "panic", rec)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create job worker pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &JobDispatcher{
		jobs:   jobs,
		pool:   pool,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}, nil
}

func (d *JobDispatcher) DispatchNightlySyncGames(ctx context.Context) error {
	return d.dispatch(ctx, synclog.JobNightlySyncGames, d.jobs.NightlySyncGames)
}

func (d *JobDispatcher) DispatchWeeklySyncPlayerStats(ctx context.Context) error {
	return d.dispatch(ctx, synclog.JobWeeklySyncPlayerStats, d.jobs.WeeklySyncPlayerStats)
}

func (d *JobDispatcher) DispatchHistoricalBackfill(ctx context.Context, input BackfillInput) error {
	for _, season := range input.Seasons {
		if season < MinSeason {
			return fmt.Errorf("%w: invalid season %d", ErrInvalidInput, season)
		}
	}
	if err := ValidateNumSeasons(input.NumSeasons); err != nil {
		return err
	}
	seasons := append([]int(nil), input.Seasons...)
	return d.dispatch(ctx, synclog.JobHistoricalBackfillStats, func(ctx context.Context) synclog.Entry {
		return d.jobs.HistoricalBackfillStats(ctx, seasons, input.NumSeasons)
	})
}

func (d *JobDispatcher) dispatch(ctx context.Context, name string, fn func(context.Context) synclog.Entry) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobDispatcher.dispatch")
	defer span.End()

	err := d.pool.Submit(func() {
		entry := fn(d.ctx)
		d.logger.Info("dispatched job finished", "job", name, "success", entry.Success, "run_id", entry.RunID)
	})
	switch {
	case err == nil:
		d.logger.InfoContext(ctx, "job dispatched", "job", name, "running", d.pool.Running())
		return nil
	case errors.Is(err, ants.ErrPoolOverload):
		metrics.JobQueueRejected.WithLabelValues(name).Inc()
		return fmt.Errorf("%w: %s rejected, all job workers busy", ErrDependencyUnavailable, name)
	case errors.Is(err, ants.ErrPoolClosed):
		return fmt.Errorf("%w: job workers are shut down", ErrDependencyUnavailable)
	default:
		return fmt.Errorf("submit %s: %w", name, err)
	}
}

// Close stops accepting jobs, cancels running ones and waits up to timeout.
func (d *JobDispatcher) Close(timeout time.Duration) error {
	d.cancel()
	if err := d.pool.ReleaseTimeout(timeout); err != nil {
		return fmt.Errorf("release job workers: %w", err)
	}
	return nil
}

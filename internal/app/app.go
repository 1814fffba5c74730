// Package app builds the service graph from config.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/athlete-hub/external/mlb"
	"github.com/riskibarqy/athlete-hub/external/nba"
	"github.com/riskibarqy/athlete-hub/external/nfl"
	"github.com/riskibarqy/athlete-hub/external/nhl"
	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/config"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/athlete-hub/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/athlete-hub/internal/platform/cache"
	"github.com/riskibarqy/athlete-hub/internal/platform/id"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/resilience"
	"github.com/riskibarqy/athlete-hub/internal/scheduler"
	"github.com/riskibarqy/athlete-hub/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dispatcherDrainTimeout = 30 * time.Second

// App owns every long-lived component of one process.
type App struct {
	Server    *http.Server
	Jobs      *usecase.SyncJobService
	Scheduler *scheduler.Scheduler

	dispatcher *usecase.JobDispatcher
	db         *sqlx.DB
	logger     *logging.Logger
}

// New wires storage, provider clients, services and the HTTP server. The
// scheduler is nil when SCHEDULER_ENABLED=false.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	tx, db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{db: db, logger: logger}
	if err := a.build(cfg, tx); err != nil {
		_ = a.closeDB()
		return nil, err
	}
	return a, nil
}

func (a *App) build(cfg config.Config, tx store.Transactor) error {
	if cfg.CatalogCacheTTL > 0 {
		tx = cache.NewTransactor(tx, basecache.NewStore(cfg.CatalogCacheTTL, basecache.WithName("catalog")))
	}

	clients := NewLeagueClients(cfg.Providers, a.logger)

	gameLeagues, err := sport.ParseCodes(cfg.JobGameLeagues)
	if err != nil {
		return fmt.Errorf("parse job game leagues: %w", err)
	}

	ids := id.NewUUIDGenerator()
	syncSvc := usecase.NewSyncService(tx, clients, ids, a.logger)
	a.Jobs = usecase.NewSyncJobService(syncSvc, tx, usecase.JobConfig{
		GameLeagues:            gameLeagues,
		ContinueOnAthleteError: cfg.JobContinueOnAthleteError,
		SyncGameStats:          cfg.JobSyncGameStats,
		BackfillSeasons:        cfg.JobBackfillSeasons,
	}, ids, nil, a.logger)

	a.dispatcher, err = usecase.NewJobDispatcher(a.Jobs, cfg.JobWorkers, a.logger)
	if err != nil {
		return fmt.Errorf("create job dispatcher: %w", err)
	}

	if cfg.SchedulerEnabled {
		loc, err := time.LoadLocation(cfg.SchedulerTimezone)
		if err != nil {
			return fmt.Errorf("load scheduler timezone: %w", err)
		}
		a.Scheduler, err = scheduler.New(scheduler.Config{
			Location:    loc,
			NightlySpec: cfg.SchedulerNightlySpec,
			WeeklySpec:  cfg.SchedulerWeeklySpec,
		}, a.Jobs, a.logger)
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
	}

	handler := httpapi.NewHandler(usecase.NewCatalogService(tx), a.dispatcher, a.logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, a.logger, cfg.InternalJobToken),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return nil
}

// NewLeagueClients builds one fail-soft client per league from the shared
// provider settings.
func NewLeagueClients(cfg config.ProviderConfig, logger *logging.Logger) []usecase.LeagueClient {
	return []usecase.LeagueClient{
		nba.NewClient(providerConfig(cfg, sport.NBA, logger)),
		nfl.NewClient(providerConfig(cfg, sport.NFL, logger)),
		mlb.NewClient(providerConfig(cfg, sport.MLB, logger)),
		nhl.NewClient(providerConfig(cfg, sport.NHL, logger)),
	}
}

func providerConfig(cfg config.ProviderConfig, league sport.Code, logger *logging.Logger) provider.Config {
	key := strings.ToLower(league.String())
	out := provider.DefaultConfig(league)
	out.BaseURL = cfg.BaseURLs[key]
	out.Token = cfg.Tokens[key]
	out.Timeout = cfg.Timeout
	out.MinInterval = cfg.MinInterval
	out.Retries = cfg.Retries
	out.BackoffFactor = cfg.BackoffFactor
	out.CacheTTL = cfg.CacheTTL
	out.CircuitBreaker = resilience.CircuitBreakerConfig{
		Enabled:          cfg.CircuitEnabled,
		FailureThreshold: cfg.CircuitFailureCount,
		OpenTimeout:      cfg.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
	}
	out.Logger = logger
	return out
}

// openStore returns the postgres store when DB_URL is set and a seeded memory
// store otherwise.
func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (store.Transactor, *sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Warn("DB_URL not set, using in-memory store")
		mem := memory.NewStore()
		if err := memory.SeedAthletes(ctx, mem); err != nil {
			return nil, nil, fmt.Errorf("seed memory store: %w", err)
		}
		return mem, nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "db_name", dbNameFromURL(dsn))
	return postgres.NewStore(db), db, nil
}

func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

// Shutdown stops the HTTP server and the scheduler, cancels running jobs and
// waits for them before closing the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if a.dispatcher != nil {
		timeout := dispatcherDrainTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if err := a.dispatcher.Close(timeout); err != nil {
			errs = append(errs, fmt.Errorf("close job dispatcher: %w", err))
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

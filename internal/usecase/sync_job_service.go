package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/platform/id"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
	"github.com/sourcegraph/conc/panics"
)

const (
	DefaultBackfillSeasons = 3
	// MaxBackfillSeasons bounds how far back a count-based backfill reaches.
	MaxBackfillSeasons = 50
	// MinSeason is the oldest season any provider is asked for.
	MinSeason = 1900
)

type JobConfig struct {
	// GameLeagues are the leagues whose team schedules are synced.
	GameLeagues []sport.Code
	// ContinueOnAthleteError logs and counts a failed athlete instead of
	// failing the whole stats run.
	ContinueOnAthleteError bool
	// SyncGameStats also stores NBA per-game lines during stat syncs.
	SyncGameStats   bool
	BackfillSeasons int
}

func DefaultJobConfig() JobConfig {
	return JobConfig{
		GameLeagues:     []sport.Code{sport.NBA, sport.NHL},
		BackfillSeasons: DefaultBackfillSeasons,
	}
}

// SyncJobService runs the top-level jobs. Every run writes exactly one sync
// log entry and never returns an error: failures and panics end up in the log.
type SyncJobService struct {
	sync   *SyncService
	tx     store.Transactor
	cfg    JobConfig
	ids    id.Generator
	clock  clockwork.Clock
	logger *logging.Logger
}

func NewSyncJobService(sync *SyncService, tx store.Transactor, cfg JobConfig, ids id.Generator, clock clockwork.Clock, logger *logging.Logger) *SyncJobService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if len(cfg.GameLeagues) == 0 {
		cfg.GameLeagues = DefaultJobConfig().GameLeagues
	}
	if cfg.BackfillSeasons <= 0 {
		cfg.BackfillSeasons = DefaultBackfillSeasons
	}
	if cfg.BackfillSeasons > MaxBackfillSeasons {
		cfg.BackfillSeasons = MaxBackfillSeasons
	}
	return &SyncJobService{
		sync:   sync,
		tx:     tx,
		cfg:    cfg,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// NightlySyncGames syncs teams, then games for every locally stored team, of
// each game league for the current season.
func (s *SyncJobService) NightlySyncGames(ctx context.Context) synclog.Entry {
	return s.run(ctx, synclog.JobNightlySyncGames, func(ctx context.Context) (string, error) {
		season := CurrentSeason(s.clock.Now())
		teams, games := 0, 0
		for _, league := range s.cfg.GameLeagues {
			if _, ok := s.sync.Client(league); !ok {
				continue
			}
			raw, err := s.sync.SyncTeams(ctx, league)
			if err != nil {
				return "", err
			}
			teams += len(raw)

			synced, err := s.syncLeagueGames(ctx, league, season)
			if err != nil {
				return "", err
			}
			games += synced
		}
		return fmt.Sprintf("synced %d teams and %d games for season %d", teams, games, season), nil
	})
}

// WeeklySyncPlayerStats syncs current-season stats for every athlete, then
// NHL standings.
func (s *SyncJobService) WeeklySyncPlayerStats(ctx context.Context) synclog.Entry {
	return s.run(ctx, synclog.JobWeeklySyncPlayerStats, func(ctx context.Context) (string, error) {
		season := CurrentSeason(s.clock.Now())
		synced, failed, err := s.syncAthletes(ctx, season)
		if err != nil {
			return "", err
		}

		standings := 0
		if client, ok := s.sync.Client(sport.NHL); ok {
			if _, ok := client.(StandingsClient); ok {
				standings, err = s.sync.SyncStandings(ctx)
				if err != nil {
					return "", err
				}
			}
		}
		return athleteMessage(fmt.Sprintf("synced stats for %d athletes and standings for %d teams in season %d", synced, standings, season), failed), nil
	})
}

// HistoricalBackfillStats replays game and stat syncs for past seasons. With
// no explicit seasons it covers the last numSeasons years up to now.
func (s *SyncJobService) HistoricalBackfillStats(ctx context.Context, seasons []int, numSeasons int) synclog.Entry {
	return s.run(ctx, synclog.JobHistoricalBackfillStats, func(ctx context.Context) (string, error) {
		if len(seasons) == 0 {
			seasons = RecentSeasons(s.clock.Now(), s.backfillCount(numSeasons))
		}

		for _, league := range sport.AllCodes() {
			if _, ok := s.sync.Client(league); !ok {
				continue
			}
			if _, err := s.sync.SyncTeams(ctx, league); err != nil {
				return "", err
			}
		}

		games, athletes, failed := 0, 0, 0
		for _, season := range seasons {
			for _, league := range s.cfg.GameLeagues {
				if _, ok := s.sync.Client(league); !ok {
					continue
				}
				synced, err := s.syncLeagueGames(ctx, league, season)
				if err != nil {
					return "", err
				}
				games += synced
			}

			synced, failedAthletes, err := s.syncAthletes(ctx, season)
			if err != nil {
				return "", err
			}
			athletes += synced
			failed += failedAthletes
		}
		return athleteMessage(fmt.Sprintf("backfilled seasons %s: %d games, %d athlete stat syncs", joinSeasons(seasons), games, athletes), failed), nil
	})
}

func (s *SyncJobService) backfillCount(numSeasons int) int {
	if numSeasons > 0 {
		return numSeasons
	}
	return s.cfg.BackfillSeasons
}

func (s *SyncJobService) syncLeagueGames(ctx context.Context, league sport.Code, season int) (int, error) {
	teams, err := s.tx.Repositories().Teams.ListByLeague(ctx, league)
	if err != nil {
		return 0, fmt.Errorf("list %s teams: %w", league, err)
	}
	total := 0
	for _, item := range teams {
		raw, err := s.sync.SyncGames(ctx, league, item.ID, season)
		if err != nil {
			return 0, err
		}
		total += len(raw)
	}
	return total, nil
}

func (s *SyncJobService) syncAthletes(ctx context.Context, season int) (synced int, failed int, err error) {
	profiles, err := s.tx.Repositories().Athletes.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list athletes: %w", err)
	}

	for _, profile := range profiles {
		ok, err := s.syncAthlete(ctx, profile, season)
		if err != nil {
			if !s.cfg.ContinueOnAthleteError {
				return synced, failed, err
			}
			failed++
			s.logger.WarnContext(ctx, "athlete stat sync failed, continuing", "athlete_id", profile.ID, "season", season, "error", err)
			continue
		}
		if ok {
			synced++
		}
	}
	return synced, failed, nil
}

func (s *SyncJobService) syncAthlete(ctx context.Context, profile athlete.Profile, season int) (bool, error) {
	league, ok := profile.Sport()
	if !ok {
		return false, nil
	}
	if _, ok := s.sync.Client(league); !ok {
		return false, nil
	}

	synced, err := s.sync.SyncPlayerStats(ctx, league, profile, season)
	if err != nil || !synced {
		return synced, err
	}
	if s.cfg.SyncGameStats && league == sport.NBA {
		if _, err := s.sync.SyncGameStats(ctx, profile, season); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (s *SyncJobService) run(ctx context.Context, jobName string, fn func(ctx context.Context) (string, error)) synclog.Entry {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncJobService."+jobName)
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		runID = ""
	}
	logger := s.logger.With("job", jobName, "run_id", runID)
	started := s.clock.Now()
	logger.InfoContext(ctx, "sync job started")
	s.sync.InvalidateCaches(ctx)

	var (
		message string
		runErr  error
		catcher panics.Catcher
	)
	catcher.Try(func() {
		message, runErr = fn(ctx)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		runErr = recovered.AsError()
	}

	status := "success"
	entry := synclog.Entry{JobName: jobName, Success: runErr == nil, Message: message, RunID: runID}
	if runErr != nil {
		status = "failed"
		entry.Message = runErr.Error()
		logger.ErrorContext(ctx, "sync job failed", "error", runErr)
	}
	elapsed := s.clock.Since(started)
	metrics.JobRuns.WithLabelValues(jobName, status).Inc()
	metrics.JobDuration.WithLabelValues(jobName).Observe(elapsed.Seconds())

	// The audit row is written even when the job was cancelled.
	written, err := s.tx.Repositories().SyncLogs.Append(context.WithoutCancel(ctx), entry)
	if err != nil {
		logger.ErrorContext(ctx, "write sync log failed", "error", err)
		return entry
	}
	logger.InfoContext(ctx, "sync job finished", "success", written.Success, "duration", elapsed.String())
	return written
}

// RecentSeasons returns the last n years ending at now's year, oldest first.
// n is clamped to MaxBackfillSeasons and no year precedes MinSeason.
func RecentSeasons(now time.Time, n int) []int {
	if n <= 0 {
		n = DefaultBackfillSeasons
	}
	n = min(n, MaxBackfillSeasons)
	current := CurrentSeason(now)
	first := max(current-n+1, MinSeason)
	out := make([]int, 0, n)
	for year := first; year <= current; year++ {
		out = append(out, year)
	}
	return out
}

// ValidateNumSeasons accepts 0 (use the configured default) up to
// MaxBackfillSeasons.
func ValidateNumSeasons(n int) error {
	if n < 0 || n > MaxBackfillSeasons {
		return fmt.Errorf("%w: num_seasons must be between 0 and %d", ErrInvalidInput, MaxBackfillSeasons)
	}
	return nil
}

func athleteMessage(message string, failed int) string {
	if failed == 0 {
		return message
	}
	return fmt.Sprintf("%s; %d athletes failed", message, failed)
}

func joinSeasons(seasons []int) string {
	parts := make([]string, len(seasons))
	for i, season := range seasons {
		parts[i] = fmt.Sprint(season)
	}
	return strings.Join(parts, ",")
}

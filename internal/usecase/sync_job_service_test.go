package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/athlete-hub/internal/platform/id"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	athletemock "github.com/riskibarqy/athlete-hub/internal/mocks/domain/athlete"
	synclogmock "github.com/riskibarqy/athlete-hub/internal/mocks/domain/synclog"
	usecasemock "github.com/riskibarqy/athlete-hub/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var jobNow = time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)

func newJobService(tx store.Transactor, cfg JobConfig, clients ...LeagueClient) *SyncJobService {
	syncSvc := NewSyncService(tx, clients, id.NewSequenceGenerator("stat"), logging.NewNop())
	return NewSyncJobService(syncSvc, tx, cfg, id.NewSequenceGenerator("run"), clockwork.NewFakeClockAt(jobNow), logging.NewNop())
}

func listLogs(t *testing.T, s *memory.Store) []synclog.Entry {
	t.Helper()
	logs, err := s.Repositories().SyncLogs.List(context.Background(), synclog.ListFilter{})
	if err != nil {
		t.Fatalf("list sync logs: %v", err)
	}
	return logs
}

func TestSyncJobService_NightlySyncGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{
		league: sport.NBA,
		teams:  []provider.Record{nbaTeam(1, "Hawks"), nbaTeam(2, "Celtics")},
		games: map[int64][]provider.Record{
			1: {nbaGame(10, 1, 2)},
			2: {nbaGame(11, 2, 1)},
		},
	}
	jobs := newJobService(s, DefaultJobConfig(), client)

	entry := jobs.NightlySyncGames(ctx)
	if !entry.Success || entry.JobName != synclog.JobNightlySyncGames {
		t.Fatalf("expected successful nightly entry, got %+v", entry)
	}
	if entry.RunID != "run-1" {
		t.Fatalf("expected run id, got %q", entry.RunID)
	}
	if client.invalidated() != 1 {
		t.Fatalf("expected provider cache dropped once per run, got %d", client.invalidated())
	}

	teams, _ := s.Repositories().Teams.ListByLeague(ctx, sport.NBA)
	games, _ := s.Repositories().Games.ListByLeague(ctx, sport.NBA, game.ListFilter{})
	if len(teams) != 2 || len(games) != 2 {
		t.Fatalf("expected 2 teams and 2 games, got %d and %d", len(teams), len(games))
	}
	for _, season := range client.seasonsRequested() {
		if season != 2024 {
			t.Fatalf("expected current season, got %d", season)
		}
	}

	logs := listLogs(t, s)
	if len(logs) != 1 || !logs[0].Success || logs[0].JobName != "nightly_sync_games" {
		t.Fatalf("expected one success log, got %+v", logs)
	}
}

func TestSyncJobService_BackfillRecordsFailureUsingMockery(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	client := usecasemock.NewLeagueClient(t)
	client.On("League").Return(sport.NBA)
	client.
		On("GetTeams", mock.Anything).
		Panic("fail").
		Once()

	jobs := newJobService(s, DefaultJobConfig(), client)

	var entry synclog.Entry
	require.NotPanics(t, func() {
		entry = jobs.HistoricalBackfillStats(context.Background(), nil, 3)
	})
	require.False(t, entry.Success)
	require.Contains(t, entry.Message, "fail")

	logs := listLogs(t, s)
	require.Len(t, logs, 1)
	require.Equal(t, synclog.JobHistoricalBackfillStats, logs[0].JobName)
	require.False(t, logs[0].Success)
}

func TestSyncJobService_WeeklySyncPlayerStatsNHL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	if err := s.Repositories().Athletes.Save(ctx, profile("athlete-mcdavid", sport.NHL, 8478402)); err != nil {
		t.Fatalf("seed athlete: %v", err)
	}
	if err := s.Repositories().Athletes.Save(ctx, athlete.Profile{ID: "athlete-no-sport"}); err != nil {
		t.Fatalf("seed athlete: %v", err)
	}
	client := &fakeLeagueClient{league: sport.NHL, stats: map[string]provider.Record{"": {"goals": float64(30), "assists": float64(40), "points": float64(70)}}}
	jobs := newJobService(s, DefaultJobConfig(), client)

	entry := jobs.WeeklySyncPlayerStats(ctx)
	if !entry.Success {
		t.Fatalf("expected success, got %+v", entry)
	}

	rows, _ := s.Repositories().Stats.ListByAthlete(ctx, "athlete-mcdavid", nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 stat rows, got %d", len(rows))
	}
	want := map[string]string{"Goals": "30", "Assists": "40", "Points": "70"}
	for _, row := range rows {
		if want[row.Name] != row.Value {
			t.Fatalf("unexpected %s=%q", row.Name, row.Value)
		}
		if stat.SeasonString(row.Season) != "2024" || row.StatType != "NHL" {
			t.Fatalf("unexpected row %+v", row)
		}
	}

	logs := listLogs(t, s)
	if len(logs) != 1 || logs[0].JobName != synclog.JobWeeklySyncPlayerStats {
		t.Fatalf("expected one weekly log, got %+v", logs)
	}
}

func TestSyncJobService_WeeklyAthleteFailurePolicy(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *memory.Store {
		s := memory.NewStore()
		ctx := context.Background()
		for _, p := range []athlete.Profile{profile("a1", sport.NHL, 1), profile("a2", sport.MLB, 2)} {
			if err := s.Repositories().Athletes.Save(ctx, p); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		return s
	}
	// Values longer than the column width fail validation on insert.
	nhl := &fakeLeagueClient{league: sport.NHL, stats: map[string]provider.Record{"": {"goals": strings.Repeat("9", 150)}}}
	mlb := &fakeLeagueClient{league: sport.MLB, stats: map[string]provider.Record{"hitting": {"avg": ".312"}}}

	t.Run("abort by default", func(t *testing.T) {
		s := seed(t)
		entry := newJobService(s, DefaultJobConfig(), nhl, mlb).WeeklySyncPlayerStats(context.Background())
		if entry.Success {
			t.Fatalf("expected failed run")
		}
		rows, _ := s.Repositories().Stats.ListByAthlete(context.Background(), "a2", nil)
		if len(rows) != 0 {
			t.Fatalf("expected remaining athletes to be skipped, got %d rows", len(rows))
		}
	})

	t.Run("continue when configured", func(t *testing.T) {
		s := seed(t)
		cfg := DefaultJobConfig()
		cfg.ContinueOnAthleteError = true
		entry := newJobService(s, cfg, nhl, mlb).WeeklySyncPlayerStats(context.Background())
		if !entry.Success || !strings.Contains(entry.Message, "1 athletes failed") {
			t.Fatalf("expected success with failure count, got %+v", entry)
		}
		rows, _ := s.Repositories().Stats.ListByAthlete(context.Background(), "a2", nil)
		if len(rows) != 1 || rows[0].Value != ".312" || rows[0].StatType != "MLB_HITTING" {
			t.Fatalf("expected MLB athlete to sync, got %+v", rows)
		}
	})
}

func TestSyncJobService_BackfillDefaultSeasons(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	client := &fakeLeagueClient{
		league: sport.NHL,
		teams:  []provider.Record{{"id": float64(1), "name": "Devils"}},
		games:  map[int64][]provider.Record{1: {{"gamePk": float64(5), "gameDate": "2023-10-12T23:00:00Z", "season": "20232024"}}},
	}
	jobs := newJobService(s, DefaultJobConfig(), client)

	entry := jobs.HistoricalBackfillStats(context.Background(), nil, 0)
	if !entry.Success {
		t.Fatalf("expected success, got %+v", entry)
	}
	got := client.seasonsRequested()
	want := []int{2022, 2023, 2024}
	if len(got) != len(want) {
		t.Fatalf("expected seasons %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected seasons %v, got %v", want, got)
		}
	}
	if !strings.Contains(entry.Message, "2022,2023,2024") {
		t.Fatalf("unexpected message %q", entry.Message)
	}
}

func TestSyncJobService_ListErrorWritesFailedLogUsingMockery(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	athletes := athletemock.NewRepository(t)
	athletes.On("List", mock.Anything).Return(nil, errors.New("db down")).Once()
	tx := overrideTx{Store: s, athletes: athletes}

	entry := newJobService(tx, DefaultJobConfig()).WeeklySyncPlayerStats(context.Background())
	if entry.Success || !strings.Contains(entry.Message, "db down") {
		t.Fatalf("expected failed entry with cause, got %+v", entry)
	}
	if logs := listLogs(t, s); len(logs) != 1 || logs[0].Success {
		t.Fatalf("expected one failed log, got %+v", logs)
	}
}

func TestSyncJobService_SyncLogWriteFailureIsSwallowedUsingMockery(t *testing.T) {
	t.Parallel()

	logs := synclogmock.NewRepository(t)
	logs.
		On("Append", mock.Anything, mock.MatchedBy(func(e synclog.Entry) bool { return e.JobName == synclog.JobNightlySyncGames && e.Success })).
		Return(synclog.Entry{}, errors.New("insert failed")).
		Once()
	tx := overrideTx{Store: memory.NewStore(), syncLogs: logs}

	entry := newJobService(tx, DefaultJobConfig()).NightlySyncGames(context.Background())
	if !entry.Success || entry.JobName != synclog.JobNightlySyncGames {
		t.Fatalf("expected unwritten success entry, got %+v", entry)
	}
}

func TestRecentSeasons(t *testing.T) {
	t.Parallel()

	got := RecentSeasons(jobNow, 2)
	if len(got) != 2 || got[0] != 2023 || got[1] != 2024 {
		t.Fatalf("unexpected seasons %v", got)
	}
	if len(RecentSeasons(jobNow, 0)) != DefaultBackfillSeasons {
		t.Fatalf("expected default season count")
	}

	capped := RecentSeasons(jobNow, 2100)
	if len(capped) != MaxBackfillSeasons || capped[0] != 1975 || capped[len(capped)-1] != 2024 {
		t.Fatalf("expected %d seasons ending 2024, got %d starting %d", MaxBackfillSeasons, len(capped), capped[0])
	}
	old := RecentSeasons(time.Date(1910, 6, 1, 0, 0, 0, 0, time.UTC), 30)
	if old[0] != MinSeason {
		t.Fatalf("expected seasons to start at %d, got %v", MinSeason, old)
	}
}

func TestValidateNumSeasons(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, MaxBackfillSeasons} {
		if err := ValidateNumSeasons(n); err != nil {
			t.Fatalf("expected %d to be accepted: %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxBackfillSeasons + 1, 2100} {
		if err := ValidateNumSeasons(n); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %d, got %v", n, err)
		}
	}
}

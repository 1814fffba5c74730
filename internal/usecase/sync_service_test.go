package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/athlete-hub/external/provider"
	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/athlete-hub/internal/platform/id"
	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	usecasemock "github.com/riskibarqy/athlete-hub/internal/mocks/usecase"
)

func newSyncService(s *memory.Store, clients ...LeagueClient) *SyncService {
	return NewSyncService(s, clients, id.NewSequenceGenerator("stat"), logging.NewNop())
}

func TestSyncService_SyncTeamsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{league: sport.NBA, teams: []provider.Record{nbaTeam(1, "Hawks"), nbaTeam(2, "Celtics")}}
	svc := newSyncService(s, client)

	for i := 0; i < 2; i++ {
		raw, err := svc.SyncTeams(ctx, sport.NBA)
		if err != nil {
			t.Fatalf("sync teams run %d: %v", i+1, err)
		}
		if len(raw) != 2 {
			t.Fatalf("expected raw list of 2, got %d", len(raw))
		}
	}

	teams, _ := s.Repositories().Teams.ListByLeague(ctx, sport.NBA)
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams after resync, got %d", len(teams))
	}
	if teams[0].FullName != "Full Hawks" || teams[0].Abbreviation != "Haw" || teams[0].Location != "City" {
		t.Fatalf("unexpected mapped team %+v", teams[0])
	}
}

func TestSyncService_SyncTeamsKeepsStandings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{
		league: sport.NHL,
		teams:  []provider.Record{{"id": float64(1), "name": "New Jersey Devils", "teamName": "Devils"}},
		standings: []provider.Record{{"teamRecords": []any{
			map[string]any{"team": map[string]any{"id": float64(1)}, "leagueRecord": map[string]any{"wins": float64(40), "losses": float64(30), "ot": float64(12)}, "points": float64(92)},
			map[string]any{"team": map[string]any{"id": float64(99)}, "points": float64(10)},
		}}},
	}
	svc := newSyncService(s, client)

	if _, err := svc.SyncTeams(ctx, sport.NHL); err != nil {
		t.Fatalf("sync teams: %v", err)
	}
	updated, err := svc.SyncStandings(ctx)
	if err != nil {
		t.Fatalf("sync standings: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected unknown team to be skipped, updated=%d", updated)
	}
	if _, err := svc.SyncTeams(ctx, sport.NHL); err != nil {
		t.Fatalf("resync teams: %v", err)
	}

	got, found, _ := s.Repositories().Teams.Get(ctx, sport.NHL, 1)
	if !found || got.Points == nil || *got.Points != 92 || *got.OvertimeLosses != 12 {
		t.Fatalf("expected standings to survive resync, got %+v", got)
	}
	if _, found, _ := s.Repositories().Teams.Get(ctx, sport.NHL, 99); found {
		t.Fatalf("standings must not create teams")
	}
}

func TestSyncService_SyncGamesRollsBackOnInvalidScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	bad := nbaGame(11, 1, 2)
	bad["home_team_score"] = float64(-1)
	client := &fakeLeagueClient{league: sport.NBA, games: map[int64][]provider.Record{1: {nbaGame(10, 1, 2), bad}}}
	svc := newSyncService(s, client)

	if _, err := svc.SyncGames(ctx, sport.NBA, 1, 2024); err == nil {
		t.Fatalf("expected negative score error")
	}
	games, _ := s.Repositories().Games.ListByLeague(ctx, sport.NBA, game.ListFilter{})
	if len(games) != 0 {
		t.Fatalf("expected rollback of the whole call, got %d games", len(games))
	}
}

func TestSyncService_SyncPlayerStatsUpdatesInPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{league: sport.NBA, stats: map[string]provider.Record{"": {"pts": float64(25), "reb": float64(7.5), "ast": float64(8), "season": float64(2024)}}}
	svc := newSyncService(s, client)
	player := profile("athlete-1", sport.NBA, 237)

	if ok, err := svc.SyncPlayerStats(ctx, sport.NBA, player, 2024); err != nil || !ok {
		t.Fatalf("first sync: ok=%v err=%v", ok, err)
	}
	first, found, _ := s.Repositories().Stats.FindByKey(ctx, stat.Key{AthleteID: "athlete-1", Name: "PointsPerGame", Season: stat.Season("2024")})
	if !found || first.Value != "25" || first.StatType != "NBA" {
		t.Fatalf("unexpected first row %+v", first)
	}

	client.stats[""]["pts"] = float64(30)
	if _, err := svc.SyncPlayerStats(ctx, sport.NBA, player, 2024); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	rows, _ := s.Repositories().Stats.ListByAthlete(ctx, "athlete-1", stat.Season("2024"))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows after resync, got %d", len(rows))
	}
	second, _, _ := s.Repositories().Stats.FindByKey(ctx, first.Key())
	if second.ID != first.ID || second.Value != "30" {
		t.Fatalf("expected in-place update of %s, got %+v", first.ID, second)
	}

	seasonRows, _ := s.Repositories().SeasonStats.ListSeasonStats(ctx, "athlete-1")
	if len(seasonRows) != 3 {
		t.Fatalf("expected numeric mirror rows, got %d", len(seasonRows))
	}
}

func TestSyncService_SyncPlayerStatsUsesResponseSeasonForNBA(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{league: sport.NBA, stats: map[string]provider.Record{"": {"pts": float64(20), "season": float64(2023)}}}
	svc := newSyncService(s, client)

	if _, err := svc.SyncPlayerStats(ctx, sport.NBA, profile("a1", sport.NBA, 1), 0); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, found, _ := s.Repositories().Stats.FindByKey(ctx, stat.Key{AthleteID: "a1", Name: "PointsPerGame", Season: stat.Season("2023")}); !found {
		t.Fatalf("expected row labelled with response season")
	}
}

func TestSyncService_SyncPlayerStatsTagsGroups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{league: sport.NFL, stats: map[string]provider.Record{
		"offense": {"passingYards": float64(4183), "rushingYards": float64(389)},
		"defense": {"tackles": float64(2)},
	}}
	svc := newSyncService(s, client)

	if _, err := svc.SyncPlayerStats(ctx, sport.NFL, profile("a1", sport.NFL, 3139477), 2024); err != nil {
		t.Fatalf("sync: %v", err)
	}
	rows, _ := s.Repositories().Stats.ListByAthlete(ctx, "a1", nil)
	if len(rows) != 3 {
		t.Fatalf("expected 3 present fields, got %d", len(rows))
	}
	types := map[string]string{}
	for _, row := range rows {
		types[row.Name] = row.StatType
	}
	if types["PassingYards"] != "NFL_OFFENSE" || types["Tackles"] != "NFL_DEFENSE" {
		t.Fatalf("unexpected stat types %+v", types)
	}
}

func TestSyncService_SyncPlayerStatsSkipsMissingExternalIDUsingMockery(t *testing.T) {
	t.Parallel()

	client := usecasemock.NewLeagueClient(t)
	client.On("League").Return(sport.MLB)
	svc := newSyncService(memory.NewStore(), client)

	ok, err := svc.SyncPlayerStats(context.Background(), sport.MLB, athlete.Profile{ID: "a1"}, 2024)
	if err != nil || ok {
		t.Fatalf("expected silent skip, got ok=%v err=%v", ok, err)
	}
}

func TestSyncService_UnknownLeagueClient(t *testing.T) {
	t.Parallel()

	svc := newSyncService(memory.NewStore())
	if _, err := svc.SyncTeams(context.Background(), sport.NFL); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSyncService_SyncGameStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewStore()
	client := &fakeLeagueClient{league: sport.NBA, gameStats: []provider.Record{
		{"game": map[string]any{"id": float64(10), "season": float64(2024)}, "pts": float64(31), "reb": float64(9), "ast": float64(11)},
		{"game": map[string]any{"id": float64(11), "season": float64(2024)}, "pts": float64(18)},
	}}
	svc := newSyncService(s, client)

	saved, err := svc.SyncGameStats(ctx, profile("a1", sport.NBA, 237), 2024)
	if err != nil {
		t.Fatalf("sync game stats: %v", err)
	}
	if saved != 4 {
		t.Fatalf("expected 4 game stat rows, got %d", saved)
	}
	rows, _ := s.Repositories().GameStats.ListGameStats(ctx, "a1")
	if len(rows) != 4 || rows[0].GameID != 10 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

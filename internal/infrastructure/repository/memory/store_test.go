package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	errBoom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Teams.Save(ctx, team.Team{ID: 1, League: sport.NBA, Name: "Hawks"}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	teams, err := s.Repositories().Teams.ListByLeague(ctx, sport.NBA)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected rollback to discard team, got %d", len(teams))
	}
}

func TestStore_WithinTxCommits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	fixed := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	err := s.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		home, visitor := int64(1), int64(2)
		if err := repos.Games.Save(ctx, game.Game{ID: 10, League: sport.NBA, HomeTeamID: &home, VisitorTeamID: &visitor}); err != nil {
			return err
		}
		_, err := repos.SyncLogs.Append(ctx, synclog.Entry{JobName: synclog.JobNightlySyncGames, Success: true})
		return err
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}

	got, ok, err := s.Repositories().Games.Get(ctx, sport.NBA, 10)
	if err != nil || !ok {
		t.Fatalf("expected committed game, got ok=%v err=%v", ok, err)
	}
	if !got.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected UpdatedAt %v, got %v", fixed, got.UpdatedAt)
	}
	logs, _ := s.Repositories().SyncLogs.List(ctx, synclog.ListFilter{})
	if len(logs) != 1 || logs[0].ID != 1 || !logs[0].CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected logs %+v", logs)
	}
}

func TestStore_SaveTeamUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Repositories().Teams

	if err := repo.Save(ctx, team.Team{ID: 1, League: sport.NBA, Name: "Hawks"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, team.Team{ID: 1, League: sport.NBA, Name: "Atlanta Hawks"}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	if err := repo.Save(ctx, team.Team{ID: 1, League: sport.NHL, Name: "Devils"}); err != nil {
		t.Fatalf("save other league: %v", err)
	}

	teams, _ := repo.ListByLeague(ctx, sport.NBA)
	if len(teams) != 1 || teams[0].Name != "Atlanta Hawks" {
		t.Fatalf("expected one updated NBA team, got %+v", teams)
	}
}

func TestStore_GameRejectsNegativeScore(t *testing.T) {
	t.Parallel()

	score := -1
	err := NewStore().Repositories().Games.Save(context.Background(), game.Game{ID: 1, League: sport.NBA, HomeScore: &score})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestStatRepository_CreateConflictAndUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Repositories().Stats
	season := stat.Season("20232024")

	first := stat.AthleteStat{ID: "s1", AthleteID: "a1", Name: "Goals", Value: "30", Season: season, StatType: "NHL"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := first
	dup.ID = "s2"
	if err := repo.Create(ctx, dup); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	first.Value = "31"
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok, err := repo.FindByKey(ctx, stat.Key{AthleteID: "a1", Name: "Goals", Season: stat.Season("20232024")})
	if err != nil || !ok {
		t.Fatalf("expected stat, got ok=%v err=%v", ok, err)
	}
	if got.Value != "31" || got.ID != "s1" {
		t.Fatalf("unexpected stat %+v", got)
	}

	if _, ok, _ := repo.FindByKey(ctx, stat.Key{AthleteID: "a1", Name: "Goals"}); ok {
		t.Fatalf("nil season must not match a seasonal row")
	}
}

func TestSyncLogRepository_ListNewestFirstWithFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStore().Repositories().SyncLogs
	for _, name := range []string{synclog.JobNightlySyncGames, synclog.JobWeeklySyncPlayerStats, synclog.JobNightlySyncGames} {
		if _, err := repo.Append(ctx, synclog.Entry{JobName: name, Success: true}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	logs, _ := repo.List(ctx, synclog.ListFilter{JobName: synclog.JobNightlySyncGames, Limit: 1})
	if len(logs) != 1 || logs[0].ID != 3 {
		t.Fatalf("expected newest nightly entry, got %+v", logs)
	}
	if _, err := repo.Append(ctx, synclog.Entry{}); err == nil {
		t.Fatalf("expected missing job name error")
	}
}

func TestSeedAthletes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	if err := SeedAthletes(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, _ := s.Repositories().Athletes.List(ctx)
	if len(list) != 4 {
		t.Fatalf("expected 4 athletes, got %d", len(list))
	}
}

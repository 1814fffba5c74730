package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
	"github.com/riskibarqy/athlete-hub/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/athlete-hub/internal/platform/cache"
)

type countingTeams struct {
	team.Repository
	lists int
}

func (c *countingTeams) ListByLeague(ctx context.Context, league sport.Code) ([]team.Team, error) {
	c.lists++
	return c.Repository.ListByLeague(ctx, league)
}

func TestTeamRepository_CachesUntilSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem := memory.NewStore()
	inner := &countingTeams{Repository: mem.Repositories().Teams}
	repo := NewTeamRepository(inner, basecache.NewStore(time.Minute, basecache.WithName("test_teams")))

	if err := repo.Save(ctx, team.Team{ID: 1, League: sport.NBA, Name: "Hawks"}); err != nil {
		t.Fatalf("save team: %v", err)
	}
	for i := 0; i < 3; i++ {
		items, err := repo.ListByLeague(ctx, sport.NBA)
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 team, got %d", len(items))
		}
	}
	if inner.lists != 1 {
		t.Fatalf("expected one backing list call, got %d", inner.lists)
	}

	if err := repo.Save(ctx, team.Team{ID: 2, League: sport.NBA, Name: "Celtics"}); err != nil {
		t.Fatalf("save team: %v", err)
	}
	items, err := repo.ListByLeague(ctx, sport.NBA)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(items) != 2 || inner.lists != 2 {
		t.Fatalf("expected refreshed list, got %d items after %d loads", len(items), inner.lists)
	}
}

func TestTransactor_CommitInvalidatesCachedReads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tx := NewTransactor(memory.NewStore(), basecache.NewStore(time.Minute, basecache.WithName("test_catalog")))

	games, err := tx.Repositories().Games.ListByLeague(ctx, sport.NHL, game.ListFilter{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}

	err = tx.WithinTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Games.Save(ctx, game.Game{ID: 9, League: sport.NHL})
	})
	if err != nil {
		t.Fatalf("save game: %v", err)
	}

	games, err = tx.Repositories().Games.ListByLeague(ctx, sport.NHL, game.ListFilter{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 || games[0].ID != 9 {
		t.Fatalf("expected committed game to be visible, got %+v", games)
	}

	_, ok, err := tx.Repositories().Games.Get(ctx, sport.NHL, 9)
	if err != nil || !ok {
		t.Fatalf("expected cached get to find game, ok=%v err=%v", ok, err)
	}
}

// Package cache decorates a store.Transactor with read-through caching of the
// team and game lists served by the catalog API.
package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
	basecache "github.com/riskibarqy/athlete-hub/internal/platform/cache"
)

const (
	teamPrefix = "team:"
	gamePrefix = "game:"
)

// Transactor caches committed reads. Every successful transaction drops the
// cached team and game entries, since sync jobs write both.
type Transactor struct {
	next  store.Transactor
	cache *basecache.Store
}

func NewTransactor(next store.Transactor, cache *basecache.Store) *Transactor {
	return &Transactor{next: next, cache: cache}
}

func (t *Transactor) Repositories() store.Repositories {
	repos := t.next.Repositories()
	repos.Teams = NewTeamRepository(repos.Teams, t.cache)
	repos.Games = NewGameRepository(repos.Games, t.cache)
	return repos
}

// WithinTx hands fn the uncached repositories so reads inside a transaction
// see its own writes.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := t.next.WithinTx(ctx, fn); err != nil {
		return err
	}
	t.cache.DeletePrefix(ctx, teamPrefix)
	t.cache.DeletePrefix(ctx, gamePrefix)
	return nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, league sport.Code) ([]team.Team, error) {
	key := teamPrefix + "list:" + league.String()
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, league)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) Get(ctx context.Context, league sport.Code, id int64) (team.Team, bool, error) {
	key := teamPrefix + "id:" + league.String() + ":" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, league, id)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Save(ctx context.Context, t team.Team) error {
	if err := r.next.Save(ctx, t); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListByLeague(ctx context.Context, league sport.Code, filter game.ListFilter) ([]game.Game, error) {
	key := gamePrefix + "list:" + league.String() + ":" + filter.Season + ":" + strconv.FormatInt(filter.TeamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, league, filter)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) Get(ctx context.Context, league sport.Code, id int64) (game.Game, bool, error) {
	key := gamePrefix + "id:" + league.String() + ":" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, league, id)
		if err != nil {
			return nil, err
		}
		return cachedGame{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGame)
	return cached.value, cached.exists, nil
}

func (r *GameRepository) Save(ctx context.Context, g game.Game) error {
	if err := r.next.Save(ctx, g); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, gamePrefix)
	return nil
}

type cachedGame struct {
	value  game.Game
	exists bool
}

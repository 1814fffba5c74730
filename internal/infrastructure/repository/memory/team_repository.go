package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

type TeamRepository struct {
	v view
}

func (r *TeamRepository) Get(ctx context.Context, league sport.Code, id int64) (team.Team, bool, error) {
	if err := ctx.Err(); err != nil {
		return team.Team{}, false, err
	}
	var (
		out   team.Team
		found bool
	)
	r.v.read(func(s *state) {
		out, found = s.teams[team.Key{League: league, ID: id}]
	})
	return out, found, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, league sport.Code) ([]team.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]team.Team, 0)
	r.v.read(func(s *state) {
		for key, item := range s.teams {
			if key.League == league {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) Save(ctx context.Context, t team.Team) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = r.v.now()
	return r.v.write(func(s *state) error {
		s.teams[t.Key()] = t
		return nil
	})
}

type GameRepository struct {
	v view
}

func (r *GameRepository) Get(ctx context.Context, league sport.Code, id int64) (game.Game, bool, error) {
	if err := ctx.Err(); err != nil {
		return game.Game{}, false, err
	}
	var (
		out   game.Game
		found bool
	)
	r.v.read(func(s *state) {
		out, found = s.games[game.Key{League: league, ID: id}]
	})
	return out, found, nil
}

func (r *GameRepository) ListByLeague(ctx context.Context, league sport.Code, filter game.ListFilter) ([]game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]game.Game, 0)
	r.v.read(func(s *state) {
		for key, item := range s.games {
			if key.League != league {
				continue
			}
			if filter.Season != "" && (item.Season == nil || *item.Season != filter.Season) {
				continue
			}
			if filter.TeamID > 0 && !item.Involves(filter.TeamID) {
				continue
			}
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di == nil && dj != nil:
			return false
		case di != nil && dj == nil:
			return true
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *GameRepository) Save(ctx context.Context, g game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	g.UpdatedAt = r.v.now()
	return r.v.write(func(s *state) error {
		s.games[g.Key()] = g
		return nil
	})
}

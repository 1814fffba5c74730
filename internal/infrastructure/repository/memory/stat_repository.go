package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
)

// StatRepository serves the text, season and game stat tables.
type StatRepository struct {
	v view
}

func (r *StatRepository) FindByKey(ctx context.Context, key stat.Key) (stat.AthleteStat, bool, error) {
	if err := ctx.Err(); err != nil {
		return stat.AthleteStat{}, false, err
	}
	var (
		out   stat.AthleteStat
		found bool
	)
	r.v.read(func(s *state) {
		out, found = findStat(s, key)
	})
	return out, found, nil
}

func findStat(s *state, key stat.Key) (stat.AthleteStat, bool) {
	for _, item := range s.stats {
		if item.Key().Matches(key) {
			return item, true
		}
	}
	return stat.AthleteStat{}, false
}

func (r *StatRepository) Create(ctx context.Context, item stat.AthleteStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = r.v.now()
	return r.v.write(func(s *state) error {
		if _, exists := s.stats[item.ID]; exists {
			return fmt.Errorf("create athlete stat %s: %w", item.ID, store.ErrConflict)
		}
		if _, exists := findStat(s, item.Key()); exists {
			return fmt.Errorf("create athlete stat %s/%s: %w", item.AthleteID, item.Name, store.ErrConflict)
		}
		s.stats[item.ID] = item
		return nil
	})
}

func (r *StatRepository) Update(ctx context.Context, item stat.AthleteStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	now := r.v.now()
	return r.v.write(func(s *state) error {
		current, exists := s.stats[item.ID]
		if !exists {
			return fmt.Errorf("update athlete stat %s: not found", item.ID)
		}
		current.Value = item.Value
		current.StatType = item.StatType
		current.Season = item.Season
		current.UpdatedAt = now
		s.stats[item.ID] = current
		return nil
	})
}

func (r *StatRepository) ListByAthlete(ctx context.Context, athleteID string, season *string) ([]stat.AthleteStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]stat.AthleteStat, 0)
	r.v.read(func(s *state) {
		for _, item := range s.stats {
			if item.AthleteID != athleteID {
				continue
			}
			if season != nil && stat.SeasonString(item.Season) != *season {
				continue
			}
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		si, sj := stat.SeasonString(out[i].Season), stat.SeasonString(out[j].Season)
		if si != sj {
			return si < sj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *StatRepository) SaveSeasonStat(ctx context.Context, item stat.SeasonStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = r.v.now()
	return r.v.write(func(s *state) error {
		s.seasonStats[seasonStatKey{athleteID: item.AthleteID, season: item.Season, name: item.Name}] = item
		return nil
	})
}

func (r *StatRepository) ListSeasonStats(ctx context.Context, athleteID string) ([]stat.SeasonStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]stat.SeasonStat, 0)
	r.v.read(func(s *state) {
		for key, item := range s.seasonStats {
			if key.athleteID == athleteID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *StatRepository) SaveGameStat(ctx context.Context, item stat.GameStat) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = r.v.now()
	return r.v.write(func(s *state) error {
		s.gameStats[gameStatKey{athleteID: item.AthleteID, gameID: item.GameID, name: item.Name}] = item
		return nil
	})
}

func (r *StatRepository) ListGameStats(ctx context.Context, athleteID string) ([]stat.GameStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]stat.GameStat, 0)
	r.v.read(func(s *state) {
		for key, item := range s.gameStats {
			if key.athleteID == athleteID {
				out = append(out, item)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

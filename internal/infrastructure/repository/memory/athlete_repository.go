package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
)

type AthleteRepository struct {
	v view
}

func (r *AthleteRepository) List(ctx context.Context) ([]athlete.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]athlete.Profile, 0)
	r.v.read(func(s *state) {
		for _, item := range s.athletes {
			out = append(out, cloneProfile(item))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AthleteRepository) Get(ctx context.Context, id string) (athlete.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return athlete.Profile{}, false, err
	}
	var (
		out   athlete.Profile
		found bool
	)
	r.v.read(func(s *state) {
		out, found = s.athletes[id]
		if found {
			out = cloneProfile(out)
		}
	})
	return out, found, nil
}

func (r *AthleteRepository) Save(ctx context.Context, p athlete.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p = cloneProfile(p)
	return r.v.write(func(s *state) error {
		s.athletes[p.ID] = p
		return nil
	})
}

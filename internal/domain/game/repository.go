package game

import (
	"context"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

// ListFilter narrows ListByLeague. Empty fields match everything.
type ListFilter struct {
	Season string
	TeamID int64
}

type Repository interface {
	Get(ctx context.Context, league sport.Code, id int64) (Game, bool, error)
	ListByLeague(ctx context.Context, league sport.Code, filter ListFilter) ([]Game, error)
	Save(ctx context.Context, g Game) error
}

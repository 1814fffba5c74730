package team

import (
	"context"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, league sport.Code, id int64) (Team, bool, error)
	ListByLeague(ctx context.Context, league sport.Code) ([]Team, error)
	Save(ctx context.Context, t Team) error
}

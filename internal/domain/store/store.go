// Package store defines the transactional boundary the sync pipeline writes through.
package store

import (
	"context"
	"errors"

	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("unique constraint violation")

type Repositories struct {
	Teams       team.Repository
	Games       game.Repository
	Athletes    athlete.Repository
	Stats       stat.Repository
	SeasonStats stat.SeasonStatRepository
	GameStats   stat.GameStatRepository
	SyncLogs    synclog.Repository
}

// Transactor runs fn in one transaction: committed when fn returns nil, rolled
// back otherwise. Reads outside a transaction go through Repositories().
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Repositories() Repositories
}

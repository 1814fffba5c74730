// Package postgres implements store.Transactor over sqlx and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
)

// dbtx is satisfied by both *sqlx.DB and *sqlx.Tx so every repository runs
// unchanged inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repositories() store.Repositories {
	return repositoriesFor(s.db)
}

// WithinTx commits when fn returns nil. Errors and panics roll back; a panic
// is re-raised after the rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func repositoriesFor(db dbtx) store.Repositories {
	stats := &StatRepository{db: db}
	return store.Repositories{
		Teams:       &TeamRepository{db: db},
		Games:       &GameRepository{db: db},
		Athletes:    &AthleteRepository{db: db},
		Stats:       stats,
		SeasonStats: stats,
		GameStats:   stats,
		SyncLogs:    &SyncLogRepository{db: db},
	}
}

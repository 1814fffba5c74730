package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/athlete-hub/internal/domain/athlete"
	"github.com/riskibarqy/athlete-hub/internal/domain/game"
	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
	"github.com/riskibarqy/athlete-hub/internal/domain/stat"
	"github.com/riskibarqy/athlete-hub/internal/domain/store"
	"github.com/riskibarqy/athlete-hub/internal/domain/synclog"
	"github.com/riskibarqy/athlete-hub/internal/domain/team"
)

type seasonStatKey struct {
	athleteID string
	season    string
	name      string
}

type gameStatKey struct {
	athleteID string
	gameID    int64
	name      string
}

type state struct {
	teams       map[team.Key]team.Team
	games       map[game.Key]game.Game
	athletes    map[string]athlete.Profile
	stats       map[string]stat.AthleteStat
	seasonStats map[seasonStatKey]stat.SeasonStat
	gameStats   map[gameStatKey]stat.GameStat
	syncLogs    []synclog.Entry
	nextLogID   int64
}

func newState() *state {
	return &state{
		teams:       make(map[team.Key]team.Team),
		games:       make(map[game.Key]game.Game),
		athletes:    make(map[string]athlete.Profile),
		stats:       make(map[string]stat.AthleteStat),
		seasonStats: make(map[seasonStatKey]stat.SeasonStat),
		gameStats:   make(map[gameStatKey]stat.GameStat),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.teams {
		out.teams[k] = v
	}
	for k, v := range s.games {
		out.games[k] = v
	}
	for k, v := range s.athletes {
		out.athletes[k] = cloneProfile(v)
	}
	for k, v := range s.stats {
		out.stats[k] = v
	}
	for k, v := range s.seasonStats {
		out.seasonStats[k] = v
	}
	for k, v := range s.gameStats {
		out.gameStats[k] = v
	}
	out.syncLogs = append([]synclog.Entry(nil), s.syncLogs...)
	out.nextLogID = s.nextLogID
	return out
}

// view separates committed state from a staged transaction copy. Write
// callbacks validate before mutating, so a failed statement changes nothing.
type view interface {
	read(fn func(*state))
	write(fn func(*state) error) error
	now() time.Time
}

// Store is an in-process store.Transactor. Transactions are serialized and
// work on a copy that replaces the committed state on success. Writes through
// Repositories() take the transaction lock, so they must not be issued from
// inside a WithinTx callback.
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	committed *state
	clock     func() time.Time
}

func NewStore() *Store {
	return &Store{
		committed: newState(),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the timestamp source used for UpdatedAt and CreatedAt.
func (s *Store) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

func (s *Store) Repositories() store.Repositories {
	return repositoriesFor(committedView{s: s})
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if fn == nil {
		return fmt.Errorf("transaction callback is required")
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	staged := &txView{state: s.committed.clone(), clock: s.clock}
	s.mu.RUnlock()

	if err := fn(ctx, repositoriesFor(staged)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit aborted: %w", err)
	}

	s.mu.Lock()
	s.committed = staged.state
	s.mu.Unlock()
	return nil
}

func repositoriesFor(v view) store.Repositories {
	stats := &StatRepository{v: v}
	return store.Repositories{
		Teams:       &TeamRepository{v: v},
		Games:       &GameRepository{v: v},
		Athletes:    &AthleteRepository{v: v},
		Stats:       stats,
		SeasonStats: stats,
		GameStats:   stats,
		SyncLogs:    &SyncLogRepository{v: v},
	}
}

type committedView struct {
	s *Store
}

func (c committedView) read(fn func(*state)) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	fn(c.s.committed)
}

func (c committedView) write(fn func(*state) error) error {
	c.s.txMu.Lock()
	defer c.s.txMu.Unlock()
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return fn(c.s.committed)
}

func (c committedView) now() time.Time { return c.s.clock() }

type txView struct {
	mu    sync.Mutex
	state *state
	clock func() time.Time
}

func (t *txView) read(fn func(*state)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.state)
}

func (t *txView) write(fn func(*state) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.state)
}

func (t *txView) now() time.Time { return t.clock() }

func cloneProfile(p athlete.Profile) athlete.Profile {
	if p.ExternalIDs != nil {
		ids := make(map[sport.Code]int64, len(p.ExternalIDs))
		for k, v := range p.ExternalIDs {
			ids[k] = v
		}
		p.ExternalIDs = ids
	}
	return p
}

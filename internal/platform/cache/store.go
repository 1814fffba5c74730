package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/athlete-hub/internal/platform/metrics"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL keeps rarely changing provider payloads (teams, standings) for one sync cycle.
const DefaultTTL = time.Hour

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	name    string
	clock   clockwork.Clock
	flight  singleflight.Group
}

type Option func(*Store)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithName labels cache metrics.
func WithName(name string) Option {
	return func(s *Store) {
		if name = strings.TrimSpace(name); name != "" {
			s.name = name
		}
	}
}

// NewStore creates a TTL store. A non-positive ttl keeps entries until deleted.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		name:    "default",
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.clock.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && !current.expiresAt.After(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		ok = false
	}

	if !ok {
		metrics.CacheLookups.WithLabelValues(s.name, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(s.name, "hit").Inc()
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Clear drops every entry.
func (s *Store) Clear(_ context.Context) {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}

// Len counts stored entries, expired ones included until they are touched.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once per key across concurrent callers.
// Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

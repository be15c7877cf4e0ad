// Package cache is an in-process TTL cache with deduplicated loads.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
)

var errNoLoader = errors.New("cache: loader is required")

type item struct {
	value any
	// expires is zero when the store has no TTL.
	expires time.Time
}

func (i item) live(now time.Time) bool {
	return i.expires.IsZero() || now.Before(i.expires)
}

// Store keeps loaded values for ttl. A ttl <= 0 keeps them until deleted.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[string]item

	loads  resilience.Flight[any]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]item),
	}
}

// Load is GetOrLoad for a typed loader.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if s == nil {
		return loader(ctx)
	}

	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, v)
	}
	return out, nil
}

// GetOrLoad returns the cached value for key, or runs loader once for all
// concurrent callers and caches a successful result. Errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errNoLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.lookup(key); ok {
		s.hits.Add(1)
		return v, nil
	}
	s.misses.Add(1)

	v, _, err := s.loads.Do(key, func() (any, error) {
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	return v, err
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	return s.lookup(key)
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	it := item{value: value}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix and returns how many went.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			s.loads.Forget(key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats reports lookups answered from memory and lookups that had to load.
func (s *Store) Stats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// lookup evicts expired entries on the way.
func (s *Store) lookup(key string) (any, bool) {
	now := s.now()
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.live(now) {
		return it.value, true
	}

	s.mu.Lock()
	if current, ok := s.items[key]; ok && !current.live(now) {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil, false
}

package resilience

import (
	"sort"
	"sync"
)

// BreakerGroup keeps one breaker per key (typically an upstream host) so one
// failing site does not short-circuit the others.
type BreakerGroup struct {
	cfg      CircuitBreakerConfig
	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

func NewBreakerGroup(cfg CircuitBreakerConfig) *BreakerGroup {
	return &BreakerGroup{
		cfg:      cfg,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get returns nil when the group is disabled.
func (g *BreakerGroup) Get(key string) *CircuitBreaker {
	if g == nil || !g.cfg.Enabled {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if b, ok := g.breakers[key]; ok {
		return b
	}
	b := NewCircuitBreaker(key, g.cfg)
	g.breakers[key] = b
	return b
}

// States snapshots breaker states by key.
func (g *BreakerGroup) States() map[string]CircuitState {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	keys := make([]string, 0, len(g.breakers))
	for key := range g.breakers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	snapshot := make([]*CircuitBreaker, 0, len(keys))
	for _, key := range keys {
		snapshot = append(snapshot, g.breakers[key])
	}
	g.mu.Unlock()

	out := make(map[string]CircuitState, len(keys))
	for i, key := range keys {
		out[key] = snapshot[i].State()
	}
	return out
}

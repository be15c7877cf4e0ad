package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
)

type LiveMatchRepository struct {
	mu    sync.RWMutex
	items []livematch.Match
}

func NewLiveMatchRepository() *LiveMatchRepository {
	return &LiveMatchRepository{}
}

func (r *LiveMatchRepository) ReplaceAll(_ context.Context, items []livematch.Match) (int, error) {
	next := make([]livematch.Match, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			item = item.WithID()
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		next = append(next, item)
	}

	r.mu.Lock()
	r.items = next
	r.mu.Unlock()
	return len(next), nil
}

func (r *LiveMatchRepository) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	var removed int64
	for _, item := range r.items {
		if item.ScrapedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	r.items = kept
	return removed, nil
}

func (r *LiveMatchRepository) List(_ context.Context) ([]livematch.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]livematch.Match(nil), r.items...), nil
}

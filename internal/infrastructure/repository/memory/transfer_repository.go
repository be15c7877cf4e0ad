package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
)

type TransferRepository struct {
	mu    sync.RWMutex
	byKey map[string]transfer.Transfer
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{byKey: make(map[string]transfer.Transfer)}
}

func (r *TransferRepository) InsertBatch(_ context.Context, items []transfer.Transfer) (upsert.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := upsert.Result{Attempted: len(items)}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			result.Failed++
			continue
		}
		key := item.Key()
		if _, exists := r.byKey[key]; exists {
			continue
		}
		if item.ID == "" {
			item = item.WithID()
		}
		r.byKey[key] = item
		result.Written++
	}
	return result, nil
}

func (r *TransferRepository) ListRecent(_ context.Context, limit int) ([]transfer.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]transfer.Transfer, 0, len(r.byKey))
	for _, item := range r.byKey {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DiscoveredAt.Equal(out[j].DiscoveredAt) {
			return out[i].DiscoveredAt.After(out[j].DiscoveredAt)
		}
		return out[i].Player < out[j].Player
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

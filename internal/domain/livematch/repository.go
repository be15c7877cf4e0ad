package livematch

import (
	"context"
	"time"
)

// Repository holds the current snapshot; ReplaceAll swaps it atomically.
type Repository interface {
	ReplaceAll(ctx context.Context, items []Match) (int, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	List(ctx context.Context) ([]Match, error)
}

package transfer

import (
	"context"

	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
)

// Repository stores transfers insert-or-ignore by natural key.
type Repository interface {
	InsertBatch(ctx context.Context, items []Transfer) (upsert.Result, error)
	// ListRecent orders by discovery time, newest first.
	ListRecent(ctx context.Context, limit int) ([]Transfer, error)
}

package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	qb "github.com/riskibarqy/matchday-feed/internal/platform/querybuilder"
)

type TransferRepository struct {
	db    *sqlx.DB
	batch *batchWriter
}

func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{db: store.db, batch: store.batch}
}

// InsertBatch skips rows whose natural key already exists; those count as
// attempted but neither written nor failed.
func (r *TransferRepository) InsertBatch(ctx context.Context, items []transfer.Transfer) (upsert.Result, error) {
	return r.batch.run(ctx, tableTransfers, len(items), nil, func(ctx context.Context, tx *sqlx.Tx, i int) (bool, error) {
		item := items[i]
		if err := item.Validate(); err != nil {
			return false, err
		}
		if item.ID == "" {
			item = item.WithID()
		}
		query, args, err := qb.InsertModel(tableTransfers, transferToTable(item), qb.OnConflictIgnore())
		if err != nil {
			return false, fmt.Errorf("build insert transfer query: %w", err)
		}
		return execRow(ctx, tx, query, args)
	})
}

func (r *TransferRepository) ListRecent(ctx context.Context, limit int) ([]transfer.Transfer, error) {
	cols, err := qb.Columns(transferTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := qb.Select(cols...).From(tableTransfers).
		OrderBy("discovered_at DESC", "player ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select transfers query: %w", err)
	}

	var rows []transferTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select transfers: %w", err)
	}

	out := make([]transfer.Transfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	qb "github.com/riskibarqy/matchday-feed/internal/platform/querybuilder"
)

type LiveMatchRepository struct {
	db    *sqlx.DB
	batch *batchWriter
}

func NewLiveMatchRepository(store *Store) *LiveMatchRepository {
	return &LiveMatchRepository{db: store.db, batch: store.batch}
}

// ReplaceAll clears the snapshot and writes items in their given order.
func (r *LiveMatchRepository) ReplaceAll(ctx context.Context, items []livematch.Match) (int, error) {
	clearSnapshot := func(ctx context.Context, tx *sqlx.Tx) error {
		query, args, err := qb.DeleteFrom(tableLiveMatches).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear live matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("clear live matches: %w", err)
		}
		return nil
	}

	result, err := r.batch.run(ctx, tableLiveMatches, len(items), clearSnapshot, func(ctx context.Context, tx *sqlx.Tx, i int) (bool, error) {
		item := items[i]
		if item.ID == "" {
			item = item.WithID()
		}
		query, args, err := qb.InsertModel(tableLiveMatches, liveMatchToTable(item, i), qb.OnConflictIgnore("id"))
		if err != nil {
			return false, fmt.Errorf("build insert live match query: %w", err)
		}
		return execRow(ctx, tx, query, args)
	})
	if err != nil {
		return 0, err
	}
	return result.Written, nil
}

func (r *LiveMatchRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return pruneOlderThan(ctx, r.db, tableLiveMatches, cutoff)
}

func (r *LiveMatchRepository) List(ctx context.Context) ([]livematch.Match, error) {
	cols, err := qb.Columns(liveMatchTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := qb.Select(cols...).From(tableLiveMatches).OrderBy("seq ASC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select live matches query: %w", err)
	}

	var rows []liveMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select live matches: %w", err)
	}

	out := make([]livematch.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

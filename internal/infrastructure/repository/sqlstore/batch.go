package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

// rowWriter writes row i of a batch inside tx.
type rowWriter func(ctx context.Context, tx *sqlx.Tx, i int) (written bool, err error)

// batchWriter runs a batch in one transaction. A failing row is logged and
// counted; it never aborts the rest of the batch.
type batchWriter struct {
	db      *sqlx.DB
	dialect Dialect
	pool    *ants.Pool
	logger  *logging.Logger
}

func newBatchWriter(db *sqlx.DB, dialect Dialect, pool *ants.Pool, logger *logging.Logger) *batchWriter {
	return &batchWriter{db: db, dialect: dialect, pool: pool, logger: logger.Named("batch")}
}

// run executes prelude (if any) and then write for every index in [0, n).
// A prelude failure aborts the whole batch.
func (w *batchWriter) run(ctx context.Context, table string, n int, prelude func(context.Context, *sqlx.Tx) error, write rowWriter) (upsert.Result, error) {
	result := upsert.Result{Attempted: n}
	if n == 0 && prelude == nil {
		return result, nil
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return upsert.Result{}, fmt.Errorf("begin %s batch: %w", table, err)
	}

	if prelude != nil {
		if err := prelude(ctx, tx); err != nil {
			w.rollback(ctx, tx, table)
			return upsert.Result{}, err
		}
	}

	var written, failed atomic.Int64
	record := func(i int, ok bool, err error) {
		if err != nil {
			failed.Add(1)
			w.logger.WarnContext(ctx, "row write failed", "table", table, "row", i, "error", err)
			return
		}
		if ok {
			written.Add(1)
		}
	}

	if w.pool != nil && w.dialect == DialectSQLite {
		w.runConcurrent(ctx, tx, n, write, record)
	} else {
		w.runSequential(ctx, tx, n, write, record)
	}

	if err := tx.Commit(); err != nil {
		w.rollback(ctx, tx, table)
		return upsert.Result{}, fmt.Errorf("commit %s batch: %w", table, err)
	}

	result.Written = int(written.Load())
	result.Failed = int(failed.Load())
	w.logger.DebugContext(ctx, "batch committed",
		"table", table,
		"attempted", result.Attempted,
		"written", result.Written,
		"failed", result.Failed,
	)
	return result, nil
}

func (w *batchWriter) runConcurrent(ctx context.Context, tx *sqlx.Tx, n int, write rowWriter, record func(int, bool, error)) {
	var workers sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		workers.Add(1)
		if err := w.pool.Submit(func() {
			defer workers.Done()
			ok, err := write(ctx, tx, i)
			record(i, ok, err)
		}); err != nil {
			workers.Done()
			record(i, false, fmt.Errorf("submit row: %w", err))
		}
	}
	workers.Wait()
}

// runSequential isolates each row in a savepoint; postgres aborts the whole
// transaction on the first failed statement otherwise.
func (w *batchWriter) runSequential(ctx context.Context, tx *sqlx.Tx, n int, write rowWriter, record func(int, bool, error)) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			record(i, false, err)
			continue
		}
		if _, err := tx.ExecContext(ctx, "SAVEPOINT batch_row"); err != nil {
			record(i, false, fmt.Errorf("create savepoint: %w", err))
			continue
		}
		ok, err := write(ctx, tx, i)
		if err != nil {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT batch_row"); rbErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback savepoint: %w", rbErr))
			}
			record(i, false, err)
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT batch_row"); err != nil {
			record(i, false, fmt.Errorf("release savepoint: %w", err))
			continue
		}
		record(i, ok, nil)
	}
}

func (w *batchWriter) rollback(ctx context.Context, tx *sqlx.Tx, table string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		w.logger.ErrorContext(ctx, "rollback failed", "table", table, "error", err)
	}
}

func execRow(ctx context.Context, tx *sqlx.Tx, query string, args []any) (bool, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return true, nil
	}
	return affected > 0, nil
}

package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	qb "github.com/riskibarqy/matchday-feed/internal/platform/querybuilder"
)

var standingKeys = []string{"team_name", "league_id"}

type LeagueStandingRepository struct {
	db    *sqlx.DB
	batch *batchWriter
}

func NewLeagueStandingRepository(store *Store) *LeagueStandingRepository {
	return &LeagueStandingRepository{db: store.db, batch: store.batch}
}

func (r *LeagueStandingRepository) Upsert(ctx context.Context, item leaguestanding.Standing) error {
	if err := item.Validate(); err != nil {
		return err
	}
	query, args, err := qb.UpsertModel(tableStandings, standingToTable(item), standingKeys...)
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert standing %s/%s: %w", item.LeagueID, item.TeamName, err)
	}
	return nil
}

func (r *LeagueStandingRepository) UpsertBatch(ctx context.Context, items []leaguestanding.Standing) (upsert.Result, error) {
	return r.batch.run(ctx, tableStandings, len(items), nil, func(ctx context.Context, tx *sqlx.Tx, i int) (bool, error) {
		item := items[i]
		if err := item.Validate(); err != nil {
			return false, err
		}
		query, args, err := qb.UpsertModel(tableStandings, standingToTable(item), standingKeys...)
		if err != nil {
			return false, fmt.Errorf("build upsert standing query: %w", err)
		}
		return execRow(ctx, tx, query, args)
	})
}

func (r *LeagueStandingRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return pruneOlderThan(ctx, r.db, tableStandings, cutoff)
}

func (r *LeagueStandingRepository) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	return r.list(ctx, []string{"position ASC"}, qb.Eq("league_id", leagueID))
}

func (r *LeagueStandingRepository) ListAll(ctx context.Context) ([]leaguestanding.Standing, error) {
	return r.list(ctx, []string{"league_id ASC", "position ASC"})
}

func (r *LeagueStandingRepository) FindLatestBySlug(ctx context.Context, slug, leagueID string) (leaguestanding.Standing, bool, error) {
	conditions := []qb.Condition{qb.Expr("LOWER(REPLACE(team_name, ' ', '-')) = ?", slug)}
	if leagueID != "" {
		conditions = append(conditions, qb.Eq("league_id", leagueID))
	}

	cols, err := qb.Columns(standingTableModel{})
	if err != nil {
		return leaguestanding.Standing{}, false, err
	}
	query, args, err := qb.Select(cols...).From(tableStandings).
		Where(conditions...).
		OrderBy("scraped_at DESC", "league_id ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return leaguestanding.Standing{}, false, fmt.Errorf("build find standing by slug query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return leaguestanding.Standing{}, false, fmt.Errorf("find standing by slug %q: %w", slug, err)
	}
	if len(rows) == 0 {
		return leaguestanding.Standing{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

func (r *LeagueStandingRepository) list(ctx context.Context, orderBy []string, conditions ...qb.Condition) ([]leaguestanding.Standing, error) {
	cols, err := qb.Columns(standingTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := qb.Select(cols...).From(tableStandings).
		Where(conditions...).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func pruneOlderThan(ctx context.Context, db *sqlx.DB, table string, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(table).Where(qb.Lt("scraped_at", cutoff.Unix())).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build prune %s query: %w", table, err)
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune %s rows affected: %w", table, err)
	}
	return affected, nil
}

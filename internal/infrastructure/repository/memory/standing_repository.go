// Package memory keeps every repository in process memory. It backs tests and
// the DB_DRIVER=memory mode; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
)

type standingKey struct {
	teamName string
	leagueID string
}

type LeagueStandingRepository struct {
	mu   sync.RWMutex
	rows map[standingKey]leaguestanding.Standing
}

func NewLeagueStandingRepository() *LeagueStandingRepository {
	return &LeagueStandingRepository{rows: make(map[standingKey]leaguestanding.Standing)}
}

func (r *LeagueStandingRepository) Upsert(_ context.Context, item leaguestanding.Standing) error {
	if err := item.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	item.Form = append([]string(nil), item.Form...)
	r.rows[standingKey{teamName: item.TeamName, leagueID: item.LeagueID}] = item
	return nil
}

func (r *LeagueStandingRepository) UpsertBatch(ctx context.Context, items []leaguestanding.Standing) (upsert.Result, error) {
	result := upsert.Result{Attempted: len(items)}
	for _, item := range items {
		if err := r.Upsert(ctx, item); err != nil {
			result.Failed++
			continue
		}
		result.Written++
	}
	return result, nil
}

func (r *LeagueStandingRepository) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for key, row := range r.rows {
		if row.ScrapedAt.Before(cutoff) {
			delete(r.rows, key)
			removed++
		}
	}
	return removed, nil
}

func (r *LeagueStandingRepository) ListByLeague(_ context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguestanding.Standing, 0)
	for _, row := range r.rows {
		if row.LeagueID == leagueID {
			out = append(out, row)
		}
	}
	sortStandings(out)
	return out, nil
}

func (r *LeagueStandingRepository) ListAll(_ context.Context) ([]leaguestanding.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]leaguestanding.Standing, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sortStandings(out)
	return out, nil
}

func (r *LeagueStandingRepository) FindLatestBySlug(_ context.Context, slug, leagueID string) (leaguestanding.Standing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best  leaguestanding.Standing
		found bool
	)
	for _, row := range r.rows {
		if row.Slug() != slug || (leagueID != "" && row.LeagueID != leagueID) {
			continue
		}
		if !found || row.ScrapedAt.After(best.ScrapedAt) ||
			(row.ScrapedAt.Equal(best.ScrapedAt) && row.LeagueID < best.LeagueID) {
			best, found = row, true
		}
	}
	return best, found, nil
}

func sortStandings(rows []leaguestanding.Standing) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LeagueID != rows[j].LeagueID {
			return rows[i].LeagueID < rows[j].LeagueID
		}
		return rows[i].Position < rows[j].Position
	})
}

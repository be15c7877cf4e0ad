package leaguestanding

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
)

// Repository persists standings keyed by (team name, league id). Every write
// replaces the whole row for its key; implementations must not merge fields.
type Repository interface {
	Upsert(ctx context.Context, item Standing) error
	// UpsertBatch writes items in one transaction; per-row failures are counted.
	UpsertBatch(ctx context.Context, items []Standing) (upsert.Result, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Standing, error)
	ListAll(ctx context.Context) ([]Standing, error)
	// FindLatestBySlug matches Slug(team name); an empty leagueID searches every league.
	FindLatestBySlug(ctx context.Context, slug, leagueID string) (Standing, bool, error)
}

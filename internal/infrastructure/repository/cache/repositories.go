// Package cache decorates repositories with a read-through TTL cache.
package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	basecache "github.com/riskibarqy/matchday-feed/internal/platform/cache"
)

const standingsPrefix = "standings:"

// LeagueStandingRepository serves standings reads from cache and drops every
// cached standings entry on any write.
type LeagueStandingRepository struct {
	next  leaguestanding.Repository
	cache *basecache.Store
}

func NewLeagueStandingRepository(next leaguestanding.Repository, cache *basecache.Store) *LeagueStandingRepository {
	return &LeagueStandingRepository{next: next, cache: cache}
}

func (r *LeagueStandingRepository) Upsert(ctx context.Context, item leaguestanding.Standing) error {
	defer r.invalidate(ctx)
	return r.next.Upsert(ctx, item)
}

func (r *LeagueStandingRepository) UpsertBatch(ctx context.Context, items []leaguestanding.Standing) (upsert.Result, error) {
	defer r.invalidate(ctx)
	return r.next.UpsertBatch(ctx, items)
}

func (r *LeagueStandingRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	removed, err := r.next.PruneOlderThan(ctx, cutoff)
	if removed > 0 {
		r.invalidate(ctx)
	}
	return removed, err
}

func (r *LeagueStandingRepository) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	items, err := basecache.Load(ctx, r.cache, standingsPrefix+"league:"+leagueID, func(ctx context.Context) ([]leaguestanding.Standing, error) {
		return r.next.ListByLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return cloneStandings(items), nil
}

func (r *LeagueStandingRepository) ListAll(ctx context.Context) ([]leaguestanding.Standing, error) {
	items, err := basecache.Load(ctx, r.cache, standingsPrefix+"all", r.next.ListAll)
	if err != nil {
		return nil, err
	}
	return cloneStandings(items), nil
}

func (r *LeagueStandingRepository) FindLatestBySlug(ctx context.Context, slug, leagueID string) (leaguestanding.Standing, bool, error) {
	key := standingsPrefix + "slug:" + leagueID + ":" + slug
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedStanding, error) {
		item, exists, err := r.next.FindLatestBySlug(ctx, slug, leagueID)
		if err != nil {
			return cachedStanding{}, err
		}
		return cachedStanding{value: item, exists: exists}, nil
	})
	if err != nil {
		return leaguestanding.Standing{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *LeagueStandingRepository) invalidate(ctx context.Context) {
	if r.cache != nil {
		r.cache.DeletePrefix(ctx, standingsPrefix)
	}
}

type cachedStanding struct {
	value  leaguestanding.Standing
	exists bool
}

func cloneStandings(items []leaguestanding.Standing) []leaguestanding.Standing {
	return append([]leaguestanding.Standing(nil), items...)
}

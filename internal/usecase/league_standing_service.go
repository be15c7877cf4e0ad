package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type LeagueStandingService struct {
	source  StandingsSource
	repo    leaguestanding.Repository
	mocks   MockGenerator
	leagues []string
	cfg     PipelineConfig
}

func NewLeagueStandingService(
	source StandingsSource,
	repo leaguestanding.Repository,
	mocks MockGenerator,
	leagues []string,
	cfg PipelineConfig,
) *LeagueStandingService {
	if len(leagues) == 0 {
		leagues = leaguestanding.KnownLeagues
	}
	cfg = cfg.withDefaults()
	cfg.Logger = cfg.Logger.Named("usecase.leagues")
	return &LeagueStandingService{
		source:  source,
		repo:    repo,
		mocks:   mocks,
		leagues: append([]string(nil), leagues...),
		cfg:     cfg,
	}
}

func (s *LeagueStandingService) Leagues() []string {
	return append([]string(nil), s.leagues...)
}

// Sync prunes rows older than the prune horizon, then refreshes every
// configured league concurrently.
func (s *LeagueStandingService) Sync(ctx context.Context) ([]CycleReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.Sync")
	defer span.End()

	var pruneErr error
	pruned, err := s.repo.PruneOlderThan(ctx, s.cfg.Now().Add(-s.cfg.PruneMaxAge))
	switch {
	case err != nil:
		pruneErr = fmt.Errorf("prune league standings: %w", err)
		s.cfg.Logger.WarnContext(ctx, "prune standings failed", "error", err)
	case pruned > 0:
		s.cfg.Logger.InfoContext(ctx, "pruned stale standings", "rows", pruned)
	}

	reports := make([]CycleReport, len(s.leagues))
	p := pool.New().WithErrors().WithContext(ctx)
	for i, leagueID := range s.leagues {
		p.Go(func(ctx context.Context) error {
			report, err := s.SyncLeague(ctx, leagueID)
			reports[i] = report
			return err
		})
	}
	return reports, errors.Join(pruneErr, p.Wait())
}

// SyncLeague scrapes one league and upserts the rows, falling back to mock
// standings when the scrape fails or yields nothing.
func (s *LeagueStandingService) SyncLeague(ctx context.Context, leagueID string) (CycleReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.SyncLeague", attribute.String("league.id", leagueID))
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return CycleReport{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	c := s.cfg.startCycle(DomainLeagues, leagueID)
	var (
		rows []leaguestanding.Standing
		err  error
	)
	if s.source != nil {
		rows, err = s.source.FetchStandings(ctx, leagueID)
	}
	if err != nil || len(rows) == 0 {
		c.fallback(ctx, err)
		rows = s.mocks.Standings(leagueID)
	}

	now := s.cfg.Now().UTC()
	for i := range rows {
		if rows[i].ScrapedAt.IsZero() {
			rows[i].ScrapedAt = now
		}
	}

	result, err := s.repo.UpsertBatch(ctx, rows)
	if err != nil {
		err = fmt.Errorf("upsert standings for %s: %w", leagueID, err)
	}
	return c.finish(ctx, result, err), err
}

func (s *LeagueStandingService) ListByLeague(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league standings: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: standings for league=%s", ErrNotFound, leagueID)
	}
	return items, nil
}

// ListAll groups every stored row by league id.
func (s *LeagueStandingService) ListAll(ctx context.Context) (map[string][]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueStandingService.ListAll")
	defer span.End()

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all standings: %w", err)
	}

	out := make(map[string][]leaguestanding.Standing)
	for _, item := range items {
		out[item.LeagueID] = append(out[item.LeagueID], item)
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
)

type LiveScoreService struct {
	source LiveScoresSource
	repo   livematch.Repository
	mocks  MockGenerator
	cfg    PipelineConfig
}

func NewLiveScoreService(source LiveScoresSource, repo livematch.Repository, mocks MockGenerator, cfg PipelineConfig) *LiveScoreService {
	cfg = cfg.withDefaults()
	cfg.Logger = cfg.Logger.Named("usecase.livescores")
	return &LiveScoreService{source: source, repo: repo, mocks: mocks, cfg: cfg}
}

// Sync replaces the stored snapshot with the latest scrape (or mock matches)
// and prunes anything past the prune horizon.
func (s *LiveScoreService) Sync(ctx context.Context) (CycleReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.Sync")
	defer span.End()

	c := s.cfg.startCycle(DomainLiveScores, "")
	var (
		rows []livematch.Match
		err  error
	)
	if s.source != nil {
		rows, err = s.source.FetchLiveScores(ctx)
	}
	if err != nil || len(rows) == 0 {
		c.fallback(ctx, err)
		rows = s.mocks.LiveMatches()
	}

	now := s.cfg.Now().UTC()
	for i := range rows {
		if rows[i].ScrapedAt.IsZero() {
			rows[i].ScrapedAt = now
		}
		if rows[i].ID == "" {
			rows[i] = rows[i].WithID()
		}
	}

	written, err := s.repo.ReplaceAll(ctx, rows)
	result := upsert.Result{Attempted: len(rows), Written: written}
	if err != nil {
		err = fmt.Errorf("replace live matches: %w", err)
		return c.finish(ctx, result, err), err
	}
	result.Failed = len(rows) - written

	pruned, err := s.repo.PruneOlderThan(ctx, now.Add(-s.cfg.PruneMaxAge))
	if err != nil {
		err = fmt.Errorf("prune live matches: %w", err)
	}
	c.report.Pruned = pruned
	return c.finish(ctx, result, err), err
}

// ListGrouped returns the snapshot grouped by competition in first-seen order.
func (s *LiveScoreService) ListGrouped(ctx context.Context) ([]livematch.CompetitionGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveScoreService.ListGrouped")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live matches: %w", err)
	}
	return livematch.GroupByCompetition(items), nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
)

const maxTransfersLimit = 200

type TransferService struct {
	source       TransfersSource
	repo         transfer.Repository
	mocks        MockGenerator
	defaultLimit int
	cfg          PipelineConfig
}

func NewTransferService(source TransfersSource, repo transfer.Repository, mocks MockGenerator, defaultLimit int, cfg PipelineConfig) *TransferService {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	cfg = cfg.withDefaults()
	cfg.Logger = cfg.Logger.Named("usecase.transfers")
	return &TransferService{
		source:       source,
		repo:         repo,
		mocks:        mocks,
		defaultLimit: defaultLimit,
		cfg:          cfg,
	}
}

// Sync inserts newly seen transfers; rows already stored keep their first
// discovery time.
func (s *TransferService) Sync(ctx context.Context) (CycleReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Sync")
	defer span.End()

	c := s.cfg.startCycle(DomainTransfers, "")
	var (
		rows []transfer.Transfer
		err  error
	)
	if s.source != nil {
		rows, err = s.source.FetchTransfers(ctx)
	}
	if err != nil || len(rows) == 0 {
		c.fallback(ctx, err)
		rows = s.mocks.Transfers()
	}

	now := s.cfg.Now().UTC()
	for i := range rows {
		if rows[i].DiscoveredAt.IsZero() {
			rows[i].DiscoveredAt = now
		}
	}

	result, err := s.repo.InsertBatch(ctx, rows)
	if err != nil {
		err = fmt.Errorf("insert transfers: %w", err)
	}
	return c.finish(ctx, result, err), err
}

// ListRecent caps limit at 200; a non-positive limit uses the configured default.
func (s *TransferService) ListRecent(ctx context.Context, limit int) ([]transfer.Transfer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.ListRecent")
	defer span.End()

	switch {
	case limit <= 0:
		limit = s.defaultLimit
	case limit > maxTransfersLimit:
		limit = maxTransfersLimit
	}

	items, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return items, nil
}

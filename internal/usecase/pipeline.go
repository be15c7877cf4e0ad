package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"github.com/riskibarqy/matchday-feed/internal/platform/id"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

// Data domains, used as scheduler task names, metric labels and run id prefixes.
const (
	DomainLeagues    = "leagues"
	DomainTransfers  = "transfers"
	DomainLiveScores = "livescores"
	DomainTeams      = "teams"
)

// Where the rows of a cycle came from.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

const defaultPruneMaxAge = 24 * time.Hour

type StandingsSource interface {
	FetchStandings(ctx context.Context, leagueID string) ([]leaguestanding.Standing, error)
}

type TransfersSource interface {
	FetchTransfers(ctx context.Context) ([]transfer.Transfer, error)
}

type LiveScoresSource interface {
	FetchLiveScores(ctx context.Context) ([]livematch.Match, error)
}

type TeamProfileSource interface {
	FetchProfile(ctx context.Context, teamID, leagueID string) (team.Profile, error)
}

// MockGenerator produces synthetic rows shaped exactly like scraped ones.
type MockGenerator interface {
	Standings(leagueID string) []leaguestanding.Standing
	Transfers() []transfer.Transfer
	LiveMatches() []livematch.Match
	Team(teamID, leagueID string) team.Detail
	Squad(teamID string) []team.SquadMember
	Fixtures(teamID, teamName string) []team.Fixture
	Stats(teamID string) team.SeasonStats
}

// CycleMetrics records the outcome of one scrape cycle.
type CycleMetrics interface {
	ObserveCycle(domain, source string, result upsert.Result, elapsed time.Duration)
}

type nopCycleMetrics struct{}

func (nopCycleMetrics) ObserveCycle(string, string, upsert.Result, time.Duration) {}

// CycleReport summarizes one fetch, normalize and upsert pass.
type CycleReport struct {
	RunID    string
	Domain   string
	Key      string
	Source   string
	Result   upsert.Result
	Pruned   int64
	Duration time.Duration
}

type PipelineConfig struct {
	PruneMaxAge time.Duration
	Metrics     CycleMetrics
	IDs         id.Generator
	Logger      *logging.Logger
	Now         func() time.Time
}

func (c PipelineConfig) withDefaults() PipelineConfig {
	if c.PruneMaxAge <= 0 {
		c.PruneMaxAge = defaultPruneMaxAge
	}
	if c.Metrics == nil {
		c.Metrics = nopCycleMetrics{}
	}
	if c.IDs == nil {
		c.IDs = id.NewRandomGenerator()
	}
	if c.Logger == nil {
		c.Logger = logging.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// cycle tracks one run of a domain pipeline from fetch to metrics.
type cycle struct {
	report  CycleReport
	started time.Time
	logger  *logging.Logger
	cfg     PipelineConfig
}

func (c PipelineConfig) startCycle(domain, key string) *cycle {
	runID := id.MustNewID(id.NewPrefixed(domain, c.IDs))
	logger := c.Logger.With("run_id", runID, "domain", domain)
	if key != "" {
		logger = logger.With("key", key)
	}
	return &cycle{
		report:  CycleReport{RunID: runID, Domain: domain, Key: key, Source: SourceLive},
		started: c.Now(),
		logger:  logger,
		cfg:     c,
	}
}

// fallback switches the cycle to mock data after a failed or empty scrape.
func (c *cycle) fallback(ctx context.Context, err error) {
	c.report.Source = SourceMock
	if err != nil {
		c.logger.WarnContext(ctx, "scrape failed, using mock data", "error", err)
		return
	}
	c.logger.InfoContext(ctx, "scrape returned no rows, using mock data")
}

func (c *cycle) finish(ctx context.Context, result upsert.Result, err error) CycleReport {
	c.report.Result = result
	c.report.Duration = c.cfg.Now().Sub(c.started)
	c.cfg.Metrics.ObserveCycle(c.report.Domain, c.report.Source, result, c.report.Duration)

	if err != nil {
		c.logger.ErrorContext(ctx, "cycle failed", "source", c.report.Source, "error", err)
		return c.report
	}
	c.logger.InfoContext(ctx, "cycle finished",
		"source", c.report.Source,
		"attempted", result.Attempted,
		"written", result.Written,
		"failed", result.Failed,
		"duration", c.report.Duration,
	)
	return c.report
}

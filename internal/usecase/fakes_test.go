package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"github.com/riskibarqy/matchday-feed/internal/mockdata"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

var fixedNow = time.Date(2025, 11, 2, 15, 0, 0, 0, time.UTC)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type metricCall struct {
	domain string
	source string
	result upsert.Result
}

type recordingMetrics struct {
	mu    sync.Mutex
	calls []metricCall
}

func (m *recordingMetrics) ObserveCycle(domain, source string, result upsert.Result, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, metricCall{domain: domain, source: source, result: result})
}

func (m *recordingMetrics) snapshot() []metricCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]metricCall(nil), m.calls...)
}

func testPipelineConfig(metrics CycleMetrics) PipelineConfig {
	return PipelineConfig{
		Metrics: metrics,
		IDs:     staticIDGenerator{id: "run-1"},
		Logger:  logging.NewNop(),
		Now:     func() time.Time { return fixedNow },
	}
}

func testMocks() *mockdata.Generator {
	return mockdata.New(mockdata.WithSeed(7), mockdata.WithClock(func() time.Time { return fixedNow }))
}

type stubStandingsSource struct {
	rows map[string][]leaguestanding.Standing
	err  error
}

func (s stubStandingsSource) FetchStandings(_ context.Context, leagueID string) ([]leaguestanding.Standing, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]leaguestanding.Standing(nil), s.rows[leagueID]...), nil
}

type stubTransfersSource struct {
	rows []transfer.Transfer
	err  error
}

func (s stubTransfersSource) FetchTransfers(context.Context) ([]transfer.Transfer, error) {
	return append([]transfer.Transfer(nil), s.rows...), s.err
}

type stubLiveScoresSource struct {
	rows []livematch.Match
	err  error
}

func (s stubLiveScoresSource) FetchLiveScores(context.Context) ([]livematch.Match, error) {
	return append([]livematch.Match(nil), s.rows...), s.err
}

type stubProfileSource struct {
	profile team.Profile
	err     error
}

func (s stubProfileSource) FetchProfile(_ context.Context, teamID, leagueID string) (team.Profile, error) {
	if s.err != nil {
		return team.Profile{}, s.err
	}
	p := s.profile
	p.ID = teamID
	p.LeagueID = leagueID
	return p, nil
}

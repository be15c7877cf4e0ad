package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-feed/internal/mockdata"
	leaguestandingmock "github.com/riskibarqy/matchday-feed/internal/mocks/domain/leaguestanding"
	teammock "github.com/riskibarqy/matchday-feed/internal/mocks/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var handlerNow = time.Date(2025, 11, 2, 15, 0, 0, 0, time.UTC)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testDeps struct {
	standings leaguestanding.Repository
	transfers *memory.TransferRepository
	live      *memory.LiveMatchRepository
	teams     team.Repository
	health    HealthChecker
}

func newTestDeps() testDeps {
	return testDeps{
		standings: memory.NewLeagueStandingRepository(),
		transfers: memory.NewTransferRepository(),
		live:      memory.NewLiveMatchRepository(),
		teams:     memory.NewTeamRepository(),
	}
}

func (d testDeps) router() http.Handler {
	cfg := usecase.PipelineConfig{
		Logger: logging.NewNop(),
		Now:    func() time.Time { return handlerNow },
	}
	mocks := mockdata.New(mockdata.WithSeed(3), mockdata.WithClock(func() time.Time { return handlerNow }))

	handler := NewHandler(Services{
		Standings: usecase.NewLeagueStandingService(nil, d.standings, mocks, nil, cfg),
		Transfers: usecase.NewTransferService(nil, d.transfers, mocks, 50, cfg),
		Live:      usecase.NewLiveScoreService(nil, d.live, mocks, cfg),
		Teams:     usecase.NewTeamService(d.standings, d.teams, nil, mocks, cfg),
		Health:    d.health,
	}, logging.NewNop())
	return NewRouter(handler, RouterConfig{
		CORSAllowedOrigins: []string{"*"},
		Metrics:            http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Logger:             logging.NewNop(),
	})
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func seedStandings(t *testing.T, repo leaguestanding.Repository, leagueID string, names ...string) {
	t.Helper()

	rows := make([]leaguestanding.Standing, 0, len(names))
	for i, name := range names {
		rows = append(rows, leaguestanding.Standing{
			LeagueID:  leagueID,
			TeamName:  name,
			TeamLogo:  leaguestanding.LogoPlaceholder(name),
			Position:  i + 1,
			Played:    10,
			Won:       10 - i,
			Lost:      i,
			Points:    3 * (10 - i),
			Form:      []string{"W", "D"},
			ScrapedAt: handlerNow,
		})
	}
	_, err := repo.UpsertBatch(context.Background(), rows)
	require.NoError(t, err)
}

func TestHealthz(t *testing.T) {
	deps := newTestDeps()
	rec := serve(t, deps.router(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	deps.health = pingFunc(func(context.Context) error { return errors.New("connection refused") })
	rec = serve(t, deps.router(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode[envelope[any]](t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAVAILABLE", body.Error.Status)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestMetricsRouteMounted(t *testing.T) {
	rec := serve(t, newTestDeps().router(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestListLeagueStandings(t *testing.T) {
	deps := newTestDeps()
	seedStandings(t, deps.standings, "premier-league", "Arsenal", "Manchester City", "Liverpool")
	h := deps.router()

	rec := serve(t, h, http.MethodGet, "/api/leagues/premier-league/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[envelope[[]standingDTO]](t, rec)
	require.Len(t, body.Data, 3)
	assert.Equal(t, "Arsenal", body.Data[0].TeamName)
	assert.Equal(t, 3, body.Data[2].Position)
	assert.Equal(t, []string{"W", "D"}, body.Data[0].Form)
	assert.Equal(t, "2025-11-02T15:00:00Z", body.Data[0].ScrapedAt)

	rec = serve(t, h, http.MethodGet, "/api/leagues/eredivisie/standings", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[envelope[any]](t, rec).Error.Status)
}

func TestListAllStandings(t *testing.T) {
	deps := newTestDeps()
	seedStandings(t, deps.standings, "premier-league", "Arsenal", "Chelsea")
	seedStandings(t, deps.standings, "la-liga", "Real Madrid")

	rec := serve(t, deps.router(), http.MethodGet, "/api/leagues/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[envelope[map[string][]standingDTO]](t, rec)
	require.Len(t, body.Data, 2)
	assert.Len(t, body.Data["premier-league"], 2)
	assert.Equal(t, "Real Madrid", body.Data["la-liga"][0].TeamName)
}

func TestListAllStandings_HidesInternalErrors(t *testing.T) {
	repo := leaguestandingmock.NewRepository(t)
	repo.On("ListAll", mock.Anything).Return(nil, errors.New("disk I/O error at /var/lib/matchday.db"))

	deps := newTestDeps()
	deps.standings = repo

	rec := serve(t, deps.router(), http.MethodGet, "/api/leagues/standings", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[envelope[any]](t, rec)
	assert.Equal(t, internalErrorMessage, body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "matchday.db")
}

func TestListTransfers(t *testing.T) {
	deps := newTestDeps()
	_, err := deps.transfers.InsertBatch(context.Background(), []transfer.Transfer{
		{Player: "Older Signing", FromClub: "A", ToClub: "B", Fee: "€5m", Type: transfer.TypePermanent, DiscoveredAt: handlerNow.Add(-time.Hour)},
		{Player: "Newest Signing", FromClub: "C", ToClub: "D", Fee: "loan", Type: transfer.TypeLoan, DiscoveredAt: handlerNow},
	})
	require.NoError(t, err)
	h := deps.router()

	rec := serve(t, h, http.MethodGet, "/api/transfers?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[envelope[[]transferDTO]](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Newest Signing", body.Data[0].PlayerName)
	assert.Equal(t, transfer.TypeLoan, body.Data[0].TransferType)
	assert.NotEmpty(t, body.Data[0].ID)

	rec = serve(t, h, http.MethodGet, "/api/transfers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[envelope[[]transferDTO]](t, rec).Data, 2)

	rec = serve(t, h, http.MethodGet, "/api/transfers?limit=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLiveScores_GroupsInFirstSeenOrder(t *testing.T) {
	deps := newTestDeps()
	_, err := deps.live.ReplaceAll(context.Background(), []livematch.Match{
		{ID: "m1", Competition: "Serie A", HomeTeam: "Inter", AwayTeam: "Roma", Status: "67'", ScrapedAt: handlerNow},
		{ID: "m2", Competition: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Spurs", Status: livematch.StatusFullTime, ScrapedAt: handlerNow},
		{ID: "m3", Competition: "Serie A", HomeTeam: "Milan", AwayTeam: "Napoli", Status: livematch.StatusHalfTime, ScrapedAt: handlerNow},
	})
	require.NoError(t, err)

	rec := serve(t, deps.router(), http.MethodGet, "/api/livescores", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[envelope[[]competitionDTO]](t, rec)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Serie A", body.Data[0].Competition)
	require.Len(t, body.Data[0].Matches, 2)
	assert.True(t, body.Data[0].Matches[0].IsLive)
	assert.False(t, body.Data[1].Matches[0].IsLive)
}

func TestGetTeamDetail_FillsMissingData(t *testing.T) {
	deps := newTestDeps()
	seedStandings(t, deps.standings, "premier-league", "Manchester City", "Arsenal")

	rec := serve(t, deps.router(), http.MethodGet, "/api/teams/arsenal?league=premier-league", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[envelope[teamDetailDTO]](t, rec)
	assert.Equal(t, "arsenal", body.Data.Team.ID)
	assert.Equal(t, "Arsenal", body.Data.Team.Name)
	assert.Equal(t, "Premier League", body.Data.Team.League)
	assert.Equal(t, 2, body.Data.Team.Position)
	assert.Equal(t, "Arsenal Stadium", body.Data.Team.Stadium)
	assert.Equal(t, 40000, body.Data.Team.Capacity)
	assert.Len(t, body.Data.Squad, mockdata.SquadSize)
	assert.Len(t, body.Data.Fixtures, mockdata.FixtureCount)
}

func TestGetTeamDetail_UnknownTeam(t *testing.T) {
	rec := serve(t, newTestDeps().router(), http.MethodGet, "/api/teams/atlantis-fc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScrapeTeam(t *testing.T) {
	deps := newTestDeps()
	h := deps.router()

	rec := serve(t, h, http.MethodPost, "/api/teams/arsenal/scrape", `{"leagueId":"premier-league"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[scrapeTeamResponse](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, scrapeTeamSucceeded, body.Message)
	require.NotNil(t, body.Data)
	assert.Equal(t, "arsenal", body.Data.ID)
	assert.Equal(t, "premier-league", body.Data.LeagueID)

	squad, err := deps.teams.ListSquad(context.Background(), "arsenal")
	require.NoError(t, err)
	assert.Len(t, squad, mockdata.SquadSize)
}

func TestScrapeTeam_RejectsBadPayloads(t *testing.T) {
	h := newTestDeps().router()

	for name, payload := range map[string]string{
		"missing league": `{}`,
		"unknown field":  `{"leagueId":"premier-league","force":true}`,
		"malformed":      `{"leagueId":`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, h, http.MethodPost, "/api/teams/arsenal/scrape", payload)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[scrapeTeamResponse](t, rec)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestScrapeTeam_StoreFailure(t *testing.T) {
	teams := teammock.NewRepository(t)
	teams.On("ReplaceTeam", mock.Anything, mock.AnythingOfType("team.Detail")).Return(errors.New("database is locked"))

	deps := newTestDeps()
	deps.teams = teams

	rec := serve(t, deps.router(), http.MethodPost, "/api/teams/arsenal/scrape", `{"leagueId":"premier-league"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[scrapeTeamResponse](t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, scrapeTeamFailed, body.Error)
	assert.False(t, strings.Contains(rec.Body.String(), "locked"))
}

func TestRecoverPanic(t *testing.T) {
	h := withRecovery(logging.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(t, h, http.MethodGet, "/api/livescores", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", decode[envelope[any]](t, rec).Error.Status)
}

func TestValidateRequest_UsesJSONFieldNames(t *testing.T) {
	h := NewHandler(Services{}, logging.NewNop())

	err := h.validateRequest(context.Background(), scrapeTeamRequest{})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	assert.Contains(t, err.Error(), "leagueId: required")

	assert.NoError(t, h.validateRequest(context.Background(), scrapeTeamRequest{LeagueID: "premier-league"}))
}

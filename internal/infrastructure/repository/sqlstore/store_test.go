package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	"github.com/riskibarqy/matchday-feed/internal/mockdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Config{Dialect: DialectSQLite, DSN: ":memory:", Name: "test", Workers: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func standingFixture(league, name string, position, points int, at time.Time) leaguestanding.Standing {
	return leaguestanding.Standing{
		LeagueID:       league,
		TeamName:       name,
		TeamLogo:       leaguestanding.LogoPlaceholder(name),
		Position:       position,
		Played:         points/3 + points%3 + 2,
		Won:            points / 3,
		Drawn:          points % 3,
		Lost:           2,
		GoalsFor:       20,
		GoalsAgainst:   10,
		GoalDifference: 10,
		Points:         points,
		Form:           []string{"W", "D", "L"},
		ScrapedAt:      at,
	}
}

func TestDriverDSN(t *testing.T) {
	dsn, err := driverDSN(DialectSQLite, ":memory:")
	require.NoError(t, err)
	assert.Equal(t, "file::memory:?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dsn)

	dsn, err = driverDSN(DialectSQLite, "data/matchday.db")
	require.NoError(t, err)
	assert.Contains(t, dsn, "journal_mode(WAL)")

	_, err = driverDSN(DialectPostgres, "")
	assert.Error(t, err)
	_, err = driverDSN("mysql", "x")
	assert.Error(t, err)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate())
}

func TestStandings_UpsertReplacesWholeRow(t *testing.T) {
	store := newTestStore(t)
	repo := NewLeagueStandingRepository(store)
	ctx := context.Background()
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, standingFixture("premier-league", "Arsenal", 1, 30, now)))

	replacement := standingFixture("premier-league", "Arsenal", 2, 27, now.Add(time.Hour))
	replacement.Form = nil
	require.NoError(t, repo.Upsert(ctx, replacement))

	rows, err := repo.ListByLeague(ctx, "premier-league")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Position)
	assert.Equal(t, 27, rows[0].Points)
	assert.Empty(t, rows[0].Form)
	assert.Equal(t, now.Add(time.Hour), rows[0].ScrapedAt)
}

func TestStandings_UpsertBatchCountsFailures(t *testing.T) {
	store := newTestStore(t)
	repo := NewLeagueStandingRepository(store)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	items := []leaguestanding.Standing{
		standingFixture("la-liga", "Real Madrid", 1, 40, now),
		standingFixture("la-liga", "Barcelona", 2, 38, now),
		standingFixture("la-liga", "", 3, 30, now),
		standingFixture("la-liga", "Girona", 4, 29, now),
	}
	result, err := repo.UpsertBatch(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 3, result.Written)
	assert.Equal(t, 1, result.Failed)

	rows, err := repo.ListByLeague(ctx, "la-liga")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Real Madrid", "Barcelona", "Girona"}, []string{rows[0].TeamName, rows[1].TeamName, rows[2].TeamName})
}

func TestStandings_PruneOlderThan(t *testing.T) {
	store := newTestStore(t)
	repo := NewLeagueStandingRepository(store)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := repo.UpsertBatch(ctx, []leaguestanding.Standing{
		standingFixture("premier-league", "Arsenal", 1, 30, now.Add(-25*time.Hour)),
		standingFixture("premier-league", "Chelsea", 2, 28, now),
	})
	require.NoError(t, err)

	removed, err := repo.PruneOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	rows, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Chelsea", rows[0].TeamName)
}

func TestStandings_FindLatestBySlug(t *testing.T) {
	store := newTestStore(t)
	repo := NewLeagueStandingRepository(store)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := repo.UpsertBatch(ctx, []leaguestanding.Standing{
		standingFixture("premier-league", "Manchester City", 1, 30, now.Add(-time.Hour)),
		standingFixture("championship", "Manchester City", 1, 50, now),
	})
	require.NoError(t, err)

	got, ok, err := repo.FindLatestBySlug(ctx, "manchester-city", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "championship", got.LeagueID)

	got, ok, err = repo.FindLatestBySlug(ctx, "manchester-city", "premier-league")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30, got.Points)

	_, ok, err = repo.FindLatestBySlug(ctx, "liverpool", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransfers_InsertBatchDedupesOnNaturalKey(t *testing.T) {
	store := newTestStore(t)
	repo := NewTransferRepository(store)
	ctx := context.Background()

	pool := mockdata.New(mockdata.WithSeed(3)).Transfers()
	first, err := repo.InsertBatch(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, len(pool), first.Written)

	second, err := repo.InsertBatch(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, len(pool), second.Attempted)
	assert.Zero(t, second.Written)
	assert.Zero(t, second.Failed)

	rows, err := repo.ListRecent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, rows, len(pool))
}

func TestTransfers_ListRecentNewestFirst(t *testing.T) {
	store := newTestStore(t)
	repo := NewTransferRepository(store)
	ctx := context.Background()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	items := []transfer.Transfer{
		{Player: "Old Signing", FromClub: "A", ToClub: "B", Fee: "€1.00m", Type: transfer.TypePermanent, DiscoveredAt: base},
		{Player: "New Signing", FromClub: "C", ToClub: "D", Fee: "loan transfer", Type: transfer.TypeLoan, DiscoveredAt: base.Add(time.Hour)},
		{Player: "X", FromClub: "E", ToClub: "F", Fee: "free", Type: transfer.TypePermanent, DiscoveredAt: base},
	}
	result, err := repo.InsertBatch(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 1, result.Failed)

	rows, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "New Signing", rows[0].Player)
	assert.NotEmpty(t, rows[0].ID)
}

func TestLiveMatches_ReplaceAllKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	repo := NewLiveMatchRepository(store)
	ctx := context.Background()

	first := mockdata.New(mockdata.WithSeed(1)).LiveMatches()
	written, err := repo.ReplaceAll(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, len(first), written)

	second := []livematch.Match{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Status: "45'", Competition: "Premier League", ScrapedAt: time.Now().UTC()},
		{HomeTeam: "Lyon", AwayTeam: "Nice", Status: livematch.StatusFullTime, Competition: "Ligue 1", ScrapedAt: time.Now().UTC()},
	}
	written, err = repo.ReplaceAll(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arsenal", rows[0].HomeTeam)
	assert.Equal(t, "Lyon", rows[1].HomeTeam)
	assert.NotEmpty(t, rows[0].ID)
}

func TestLiveMatches_ReplaceAllEmptyClearsSnapshot(t *testing.T) {
	store := newTestStore(t)
	repo := NewLiveMatchRepository(store)
	ctx := context.Background()

	_, err := repo.ReplaceAll(ctx, mockdata.New(mockdata.WithSeed(2)).LiveMatches())
	require.NoError(t, err)

	written, err := repo.ReplaceAll(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, written)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTeams_ReplaceTeamSwapsDetail(t *testing.T) {
	store := newTestStore(t)
	repo := NewTeamRepository(store)
	ctx := context.Background()
	gen := mockdata.New(mockdata.WithSeed(9))

	detail := gen.Team("arsenal", "premier-league")
	require.NoError(t, repo.ReplaceTeam(ctx, detail))

	profile, ok, err := repo.GetProfile(ctx, "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Arsenal", profile.Name)

	squad, err := repo.ListSquad(ctx, "arsenal")
	require.NoError(t, err)
	assert.Len(t, squad, mockdata.SquadSize)
	for i := 1; i < len(squad); i++ {
		assert.LessOrEqual(t, squad[i-1].Number, squad[i].Number)
	}

	fixtures, err := repo.ListFixtures(ctx, "arsenal")
	require.NoError(t, err)
	require.Len(t, fixtures, mockdata.FixtureCount)
	assert.True(t, fixtures[0].Played())
	assert.False(t, fixtures[len(fixtures)-1].Played())

	stats, ok, err := repo.GetStats(ctx, "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, detail.Stats.ShotsPerGame, stats.ShotsPerGame)

	replacement := team.Detail{Profile: detail.Profile, Squad: detail.Squad[:2]}
	replacement.Profile.Manager = "New Manager"
	require.NoError(t, repo.ReplaceTeam(ctx, replacement))

	squad, err = repo.ListSquad(ctx, "arsenal")
	require.NoError(t, err)
	assert.Len(t, squad, 2)
	fixtures, err = repo.ListFixtures(ctx, "arsenal")
	require.NoError(t, err)
	assert.Empty(t, fixtures)
	profile, _, err = repo.GetProfile(ctx, "arsenal")
	require.NoError(t, err)
	assert.Equal(t, "New Manager", profile.Manager)
}

func TestTeams_ReplaceTeamRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)
	repo := NewTeamRepository(store)
	ctx := context.Background()
	gen := mockdata.New(mockdata.WithSeed(4))

	detail := gen.Team("chelsea", "premier-league")
	require.NoError(t, repo.ReplaceTeam(ctx, detail))

	broken := gen.Team("chelsea", "premier-league")
	broken.Profile.Manager = "Should Not Persist"
	broken.Squad = append(broken.Squad, broken.Squad[0])
	require.Error(t, repo.ReplaceTeam(ctx, broken))

	profile, _, err := repo.GetProfile(ctx, "chelsea")
	require.NoError(t, err)
	assert.Equal(t, detail.Profile.Manager, profile.Manager)
	squad, err := repo.ListSquad(ctx, "chelsea")
	require.NoError(t, err)
	assert.Len(t, squad, mockdata.SquadSize)
}

func TestTeams_MissingTeam(t *testing.T) {
	store := newTestStore(t)
	repo := NewTeamRepository(store)

	_, ok, err := repo.GetProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = repo.GetStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

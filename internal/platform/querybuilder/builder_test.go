package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("team_name", "points").
		From("league_standings").
		Where(Eq("league_id", "la-liga"), Expr("LOWER(REPLACE(team_name, ' ', '-')) = ?", "real-madrid")).
		OrderBy("scraped_at DESC").
		Limit(1).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT team_name, points FROM league_standings WHERE league_id = ? AND LOWER(REPLACE(team_name, ' ', '-')) = ? ORDER BY scraped_at DESC LIMIT 1", query)
	assert.Equal(t, []any{"la-liga", "real-madrid"}, args)
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	_, _, err := Select("*").ToSQL()
	assert.ErrorIs(t, err, errNoTable)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("transfers").
		Columns("id", "player").
		Values("t1", "Saka").
		Values("t2", "Rice").
		Suffix(OnConflictIgnore("id")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO transfers (id, player) VALUES (?, ?), (?, ?) ON CONFLICT (id) DO NOTHING", query)
	assert.Equal(t, []any{"t1", "Saka", "t2", "Rice"}, args)
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("transfers").Columns("id", "player").Values("only-one").ToSQL()
	assert.Error(t, err)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("live_matches").Where(Lt("scraped_at", int64(100))).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM live_matches WHERE scraped_at < ?", query)
	assert.Equal(t, []any{int64(100)}, args)

	query, args, err = DeleteFrom("live_matches").ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM live_matches", query)
	assert.Empty(t, args)
}

func TestToSQL_MissingParts(t *testing.T) {
	_, _, err := Select().From("t").ToSQL()
	assert.ErrorIs(t, err, errNoColumns)

	_, _, err = InsertInto("t").Columns("id").ToSQL()
	assert.ErrorIs(t, err, errNoRows)

	_, _, err = DeleteFrom(" ").ToSQL()
	assert.ErrorIs(t, err, errNoTable)
}

func TestOnConflictReplace_KeysOnly(t *testing.T) {
	assert.Equal(t, "ON CONFLICT (id) DO NOTHING", OnConflictReplace([]string{"id"}, []string{"id"}))
	assert.Equal(t, "ON CONFLICT DO NOTHING", OnConflictIgnore())
}

type standingRow struct {
	TeamName string `db:"team_name"`
	LeagueID string `db:"league_id"`
	Points   int    `db:"points"`
	internal string
	Skipped  string `db:"-"`
}

func TestUpsertModel(t *testing.T) {
	query, args, err := UpsertModel("league_standings", standingRow{TeamName: "Arsenal", LeagueID: "premier-league", Points: 70}, "team_name", "league_id")
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO league_standings (team_name, league_id, points) VALUES (?, ?, ?) ON CONFLICT (team_name, league_id) DO UPDATE SET points = excluded.points", query)
	assert.Equal(t, []any{"Arsenal", "premier-league", 70}, args)
}

func TestUpsertModel_RequiresKeys(t *testing.T) {
	_, _, err := UpsertModel("league_standings", standingRow{})
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	cols, err := Columns(&standingRow{})
	require.NoError(t, err)
	assert.Equal(t, []string{"team_name", "league_id", "points"}, cols)

	_, err = Columns(42)
	assert.Error(t, err)
}

type auditColumns struct {
	ScrapedAt int64 `db:"scraped_at"`
}

type liveRow struct {
	ID string `db:"id"`
	auditColumns
}

func TestColumnsAndValues_EmbeddedStruct(t *testing.T) {
	cols, vals, err := ColumnsAndValues(liveRow{ID: "lm-1", auditColumns: auditColumns{ScrapedAt: 1700000000}})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "scraped_at"}, cols)
	assert.Equal(t, []any{"lm-1", int64(1700000000)}, vals)

	again, err := Columns(liveRow{})
	require.NoError(t, err)
	again[0] = "mutated"
	cols, err = Columns(liveRow{})
	require.NoError(t, err)
	assert.Equal(t, "id", cols[0])
}

func TestColumnsAndValues_Rejects(t *testing.T) {
	var nilRow *standingRow
	_, _, err := ColumnsAndValues(nilRow)
	assert.ErrorIs(t, err, errNilModel)

	_, _, err = ColumnsAndValues(struct{ Name string }{Name: "x"})
	assert.ErrorIs(t, err, errNoDBColumns)
}

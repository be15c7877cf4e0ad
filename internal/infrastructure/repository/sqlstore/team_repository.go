package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	qb "github.com/riskibarqy/matchday-feed/internal/platform/querybuilder"
)

type TeamRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{db: store.db, logger: store.logger}
}

// ReplaceTeam is all-or-nothing: any failed statement rolls the team back to
// its previous state.
func (r *TeamRepository) ReplaceTeam(ctx context.Context, detail team.Detail) (err error) {
	if err := detail.Profile.Validate(); err != nil {
		return err
	}
	teamID := detail.Profile.ID

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace team %s: %w", teamID, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.ErrorContext(ctx, "rollback replace team failed", "team_id", teamID, "error", rbErr)
		}
	}()

	query, args, err := qb.UpsertModel(tableTeams, profileToTable(detail.Profile), "id")
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if err = execTx(ctx, tx, query, args); err != nil {
		return fmt.Errorf("upsert team %s: %w", teamID, err)
	}

	for _, table := range []string{tablePlayers, tableFixtures, tableTeamStats} {
		query, args, err = qb.DeleteFrom(table).Where(qb.Eq("team_id", teamID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if err = execTx(ctx, tx, query, args); err != nil {
			return fmt.Errorf("clear %s for team %s: %w", table, teamID, err)
		}
	}

	for _, member := range detail.Squad {
		member.TeamID = teamID
		query, args, err = qb.InsertModel(tablePlayers, playerTableModel(member), "")
		if err != nil {
			return fmt.Errorf("build insert player query: %w", err)
		}
		if err = execTx(ctx, tx, query, args); err != nil {
			return fmt.Errorf("insert player %s: %w", member.ID, err)
		}
	}

	for _, fixture := range detail.Fixtures {
		fixture.TeamID = teamID
		query, args, err = qb.InsertModel(tableFixtures, fixtureTableModel(fixture), "")
		if err != nil {
			return fmt.Errorf("build insert fixture query: %w", err)
		}
		if err = execTx(ctx, tx, query, args); err != nil {
			return fmt.Errorf("insert fixture %s: %w", fixture.ID, err)
		}
	}

	stats := detail.Stats
	stats.TeamID = teamID
	query, args, err = qb.InsertModel(tableTeamStats, statsTableModel(stats), "")
	if err != nil {
		return fmt.Errorf("build insert team stats query: %w", err)
	}
	if err = execTx(ctx, tx, query, args); err != nil {
		return fmt.Errorf("insert team stats %s: %w", teamID, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team %s: %w", teamID, err)
	}
	return nil
}

func (r *TeamRepository) GetProfile(ctx context.Context, teamID string) (team.Profile, bool, error) {
	var rows []teamTableModel
	if err := r.selectByTeam(ctx, &rows, teamTableModel{}, tableTeams, "id", teamID, nil); err != nil {
		return team.Profile{}, false, fmt.Errorf("select team %s: %w", teamID, err)
	}
	if len(rows) == 0 {
		return team.Profile{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

func (r *TeamRepository) ListSquad(ctx context.Context, teamID string) ([]team.SquadMember, error) {
	var rows []playerTableModel
	if err := r.selectByTeam(ctx, &rows, playerTableModel{}, tablePlayers, "team_id", teamID, []string{"number ASC", "name ASC"}); err != nil {
		return nil, fmt.Errorf("select squad %s: %w", teamID, err)
	}
	out := make([]team.SquadMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) ListFixtures(ctx context.Context, teamID string) ([]team.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.selectByTeam(ctx, &rows, fixtureTableModel{}, tableFixtures, "team_id", teamID, []string{"fixture_date ASC", "kickoff_time ASC"}); err != nil {
		return nil, fmt.Errorf("select fixtures %s: %w", teamID, err)
	}
	out := make([]team.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetStats(ctx context.Context, teamID string) (team.SeasonStats, bool, error) {
	var rows []statsTableModel
	if err := r.selectByTeam(ctx, &rows, statsTableModel{}, tableTeamStats, "team_id", teamID, nil); err != nil {
		return team.SeasonStats{}, false, fmt.Errorf("select team stats %s: %w", teamID, err)
	}
	if len(rows) == 0 {
		return team.SeasonStats{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

func (r *TeamRepository) selectByTeam(ctx context.Context, dest any, model any, table, column, teamID string, orderBy []string) error {
	cols, err := qb.Columns(model)
	if err != nil {
		return err
	}
	query, args, err := qb.Select(cols...).From(table).
		Where(qb.Eq(column, teamID)).
		OrderBy(orderBy...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select %s query: %w", table, err)
	}
	return r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...)
}

func execTx(ctx context.Context, tx *sqlx.Tx, query string, args []any) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	return err
}

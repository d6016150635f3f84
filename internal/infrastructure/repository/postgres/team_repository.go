package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/team"
	qb "github.com/riskibarqy/fpl-datacollector/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"short_name",
	"strength",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:        row.ID,
			Name:      row.Name,
			ShortName: row.ShortName,
			Strength:  row.Strength,
		})
	}
	return out, nil
}

func (r *TeamRepository) ReplaceAll(ctx context.Context, teams []team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM teams"); err != nil {
		return fmt.Errorf("clear teams: %w", err)
	}

	for _, item := range teams {
		model := teamTableModel{
			ID:        item.ID,
			Name:      item.Name,
			ShortName: item.ShortName,
			Strength:  item.Strength,
		}
		query, args, err := qb.InsertModel("teams", model, "")
		if err != nil {
			return fmt.Errorf("build insert team query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace teams tx: %w", err)
	}
	return nil
}

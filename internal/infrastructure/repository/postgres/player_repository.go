package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/player"
	qb "github.com/riskibarqy/fpl-datacollector/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"team_id",
	"element_type",
	"first_name",
	"second_name",
	"web_name",
	"now_cost",
	"initial_cost",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListAll(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.ID,
			TeamID:      row.TeamID,
			ElementType: row.ElementType,
			FirstName:   row.FirstName,
			SecondName:  row.SecondName,
			WebName:     row.WebName,
			NowCost:     row.NowCost,
			InitialCost: row.InitialCost,
		})
	}
	return out, nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}

	for _, item := range players {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("validate player id=%d: %w", item.ID, err)
		}
		model := playerTableModel{
			ID:          item.ID,
			TeamID:      item.TeamID,
			ElementType: item.ElementType,
			FirstName:   item.FirstName,
			SecondName:  item.SecondName,
			WebName:     item.WebName,
			NowCost:     item.NowCost,
			InitialCost: item.InitialCost,
		}
		query, args, err := qb.InsertModel("players", model, "")
		if err != nil {
			return fmt.Errorf("build insert player query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert player id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace players tx: %w", err)
	}
	return nil
}

type PositionTypeRepository struct {
	db *sqlx.DB
}

func NewPositionTypeRepository(db *sqlx.DB) *PositionTypeRepository {
	return &PositionTypeRepository{db: db}
}

func (r *PositionTypeRepository) ReplaceAll(ctx context.Context, types []player.PositionType) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace position types: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM element_types"); err != nil {
		return fmt.Errorf("clear position types: %w", err)
	}

	for _, item := range types {
		model := positionTypeTableModel{
			ID:           item.ID,
			SingularName: item.SingularName,
		}
		query, args, err := qb.InsertModel("element_types", model, "")
		if err != nil {
			return fmt.Errorf("build insert position type query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert position type id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace position types tx: %w", err)
	}
	return nil
}

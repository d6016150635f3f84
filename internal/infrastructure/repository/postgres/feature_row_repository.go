package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
	qb "github.com/riskibarqy/fpl-datacollector/internal/platform/querybuilder"
)

type FeatureRowRepository struct {
	db *sqlx.DB
}

var featureRowSelectColumns = []string{
	"entry_id",
	"player_id",
	"event_id",
	"collected_at",
	"chance_of_playing",
	"form",
	"status",
	"fixture_code",
	"opposition",
	"is_home",
	"kickoff_time",
	"points_h", "minutes_h", "goals_scored_h", "assists_h",
	"clean_sheets_h", "goals_conceded_h", "yellow_cards_h", "red_cards_h",
	"bonus_h", "influence_h", "creativity_h", "threat_h",
	"points_a", "minutes_a", "goals_scored_a", "assists_a",
	"clean_sheets_a", "goals_conceded_a", "yellow_cards_a", "red_cards_a",
	"bonus_a", "influence_a", "creativity_a", "threat_a",
	"points_1", "points_2", "points_3",
	"minutes_1", "minutes_2", "minutes_3",
	"opposition_strength",
	"opposition_gf",
	"opposition_ga",
	"response",
}

// resetEntrySequenceSQL moves the entry-id sequence past the highest id
// still on the table, so appended batches keep ids monotonic after the
// pending range was cleared.
const resetEntrySequenceSQL = `SELECT setval(pg_get_serial_sequence('feature_rows', 'entry_id'), COALESCE((SELECT MAX(entry_id) FROM feature_rows), 0) + 1, false)`

func NewFeatureRowRepository(db *sqlx.DB) *FeatureRowRepository {
	return &FeatureRowRepository{db: db}
}

func (r *FeatureRowRepository) ListPending(ctx context.Context, kickoffBefore time.Time) ([]feature.Row, error) {
	query, args, err := qb.Select(featureRowSelectColumns...).From("feature_rows").
		Where(qb.IsNull("response"), qb.Lt("kickoff_time", kickoffBefore)).
		OrderBy("entry_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pending rows query: %w", err)
	}

	var rows []featureRowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pending rows: %w", err)
	}

	out := make([]feature.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FeatureRowRepository) SetOutcome(ctx context.Context, entryID int64, points int) error {
	query, args, err := qb.Update("feature_rows").
		Set("response", points).
		Where(qb.Eq("entry_id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update outcome query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update outcome entry_id=%d: %w", entryID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update outcome entry_id=%d: %w", entryID, sql.ErrNoRows)
	}
	return nil
}

func (r *FeatureRowRepository) Delete(ctx context.Context, entryID int64) error {
	query, args, err := qb.DeleteFrom("feature_rows").
		Where(qb.Eq("entry_id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete row query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete row entry_id=%d: %w", entryID, err)
	}
	return nil
}

func (r *FeatureRowRepository) ReplacePending(ctx context.Context, rows []feature.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace pending rows: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("feature_rows").
		Where(qb.IsNull("response")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear pending rows query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear pending rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx, resetEntrySequenceSQL); err != nil {
		return fmt.Errorf("reset entry sequence: %w", err)
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel("feature_rows", newFeatureRowInsertModel(row), "")
		if err != nil {
			return fmt.Errorf("build insert row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert row player_id=%d fixture_code=%d: %w", row.PlayerID, row.FixtureCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace pending rows tx: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/event"
	qb "github.com/riskibarqy/fpl-datacollector/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

var eventSelectColumns = []string{
	"id",
	"name",
	"deadline_time",
	"finished",
	"data_checked",
	"is_current",
	"is_next",
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListAll(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select(eventSelectColumns...).From("events").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.Event{
			ID:           row.ID,
			Name:         row.Name,
			DeadlineTime: row.DeadlineTime,
			Finished:     row.Finished,
			DataChecked:  row.DataChecked,
			IsCurrent:    row.IsCurrent,
			IsNext:       row.IsNext,
		})
	}
	return out, nil
}

func (r *EventRepository) ReplaceAll(ctx context.Context, events []event.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	for _, item := range events {
		model := eventTableModel{
			ID:           item.ID,
			Name:         item.Name,
			DeadlineTime: item.DeadlineTime,
			Finished:     item.Finished,
			DataChecked:  item.DataChecked,
			IsCurrent:    item.IsCurrent,
			IsNext:       item.IsNext,
		}
		query, args, err := qb.InsertModel("events", model, "")
		if err != nil {
			return fmt.Errorf("build insert event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert event id=%d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace events tx: %w", err)
	}
	return nil
}

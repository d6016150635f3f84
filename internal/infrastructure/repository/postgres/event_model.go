package postgres

import "time"

type eventTableModel struct {
	ID           int       `db:"id"`
	Name         string    `db:"name"`
	DeadlineTime time.Time `db:"deadline_time"`
	Finished     bool      `db:"finished"`
	DataChecked  bool      `db:"data_checked"`
	IsCurrent    bool      `db:"is_current"`
	IsNext       bool      `db:"is_next"`
}

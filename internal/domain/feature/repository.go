package feature

import (
	"context"
	"time"
)

// Repository describes feature-row persistence needs from use cases.
type Repository interface {
	// ListPending returns unresolved rows whose kickoff is before the given
	// cutoff. Rows with an unknown kickoff sort before any cutoff and are
	// included.
	ListPending(ctx context.Context, kickoffBefore time.Time) ([]Row, error)
	SetOutcome(ctx context.Context, entryID int64, points int) error
	Delete(ctx context.Context, entryID int64) error

	// ReplacePending atomically removes every pending row, resets the
	// entry-id sequence past the highest resolved id, and appends rows.
	ReplacePending(ctx context.Context, rows []Row) error
}

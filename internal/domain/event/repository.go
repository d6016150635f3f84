package event

import "context"

// Repository describes event persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Event, error)
	ReplaceAll(ctx context.Context, events []Event) error
}

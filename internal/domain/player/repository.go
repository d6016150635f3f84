package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Player, error)
	ReplaceAll(ctx context.Context, players []Player) error
}

// PositionRepository persists the element-type lookup table.
type PositionRepository interface {
	ReplaceAll(ctx context.Context, types []PositionType) error
}

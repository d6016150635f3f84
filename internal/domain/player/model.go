package player

import "fmt"

// Player is one athlete in the season-wide pool.
type Player struct {
	ID          int64
	TeamID      int64
	ElementType int
	FirstName   string
	SecondName  string
	WebName     string
	NowCost     int
	InitialCost *int
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if p.WebName == "" {
		return fmt.Errorf("player web name is required")
	}
	return nil
}

// PositionType maps an element_type id to its position name.
type PositionType struct {
	ID           int
	SingularName string
}

// MergeInitialCosts carries forward the stored initial cost for every player
// that already has one, so the value stays frozen at the price first seen.
func MergeInitialCosts(incoming []Player, stored []Player) []Player {
	known := make(map[int64]*int, len(stored))
	for _, p := range stored {
		if p.InitialCost != nil {
			known[p.ID] = p.InitialCost
		}
	}

	out := make([]Player, len(incoming))
	copy(out, incoming)
	for i := range out {
		if cost, ok := known[out[i].ID]; ok {
			out[i].InitialCost = cost
		}
	}
	return out
}

package team

// Team is one club in the league.
type Team struct {
	ID        int64
	Name      string
	ShortName string
	Strength  int
}

// Opposition summarizes a club's attacking and defensive output, derived
// from match history rather than static ratings.
type Opposition struct {
	TeamID       int64
	GoalsFor     float64
	GoalsAgainst float64
	Strength     int
}

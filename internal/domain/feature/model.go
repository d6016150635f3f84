package feature

import "time"

// StatAverages holds the per-venue rolling means for the tracked stat
// columns, rounded to two decimals.
type StatAverages struct {
	Points        float64
	Minutes       float64
	GoalsScored   float64
	Assists       float64
	CleanSheets   float64
	GoalsConceded float64
	YellowCards   float64
	RedCards      float64
	Bonus         float64
	Influence     float64
	Creativity    float64
	Threat        float64
}

// Row is one player × upcoming-fixture observation. Response stays nil until
// the fixture has been played and the outcome backfilled.
type Row struct {
	EntryID     int64
	PlayerID    int64
	EventID     int
	CollectedAt time.Time

	ChanceOfPlaying *int
	Form            float64
	Status          string

	FixtureCode      int64
	OppositionTeamID int64
	IsHome           bool
	KickoffAt        time.Time

	Home StatAverages
	Away StatAverages

	// Most recent first. Nil slots mean the player has fewer than three
	// appearances on record.
	LastPoints  [3]*int
	LastMinutes [3]*int

	OppositionStrength     int
	OppositionGoalsFor     float64
	OppositionGoalsAgainst float64

	Response *int
}

// Pending reports whether the row still awaits its fixture outcome.
func (r Row) Pending() bool {
	return r.Response == nil
}

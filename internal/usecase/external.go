package usecase

import (
	"context"
	"time"
)

// SnapshotFeedProvider is the upstream game feed as use cases see it.
type SnapshotFeedProvider interface {
	FetchBootstrap(ctx context.Context) (ExternalBootstrap, error)
	FetchPlayerSummary(ctx context.Context, playerID int64) (ExternalPlayerSummary, error)
}

type ExternalBootstrap struct {
	Events        []ExternalEvent
	Teams         []ExternalTeam
	Players       []ExternalPlayer
	PositionTypes []ExternalPositionType
}

type ExternalEvent struct {
	ID           int
	Name         string
	DeadlineTime time.Time
	Finished     bool
	DataChecked  bool
	IsCurrent    bool
	IsNext       bool
}

type ExternalTeam struct {
	ID        int64
	Name      string
	ShortName string
	Strength  int
}

type ExternalPositionType struct {
	ID           int
	SingularName string
}

type ExternalPlayer struct {
	ID              int64
	TeamID          int64
	ElementType     int
	FirstName       string
	SecondName      string
	WebName         string
	NowCost         int
	Status          string
	Form            float64
	ChanceOfPlaying *int
}

type ExternalPlayerSummary struct {
	UpcomingFixtures []ExternalUpcomingFixture
	History          []ExternalHistoryRecord
}

type ExternalUpcomingFixture struct {
	Code             int64
	EventID          int
	OppositionTeamID int64
	IsHome           bool
	KickoffAt        time.Time
	Difficulty       int
}

// ExternalHistoryRecord is one played fixture for a player, in feed order
// (oldest first).
type ExternalHistoryRecord struct {
	FixtureCode    int64
	OpponentTeamID int64
	Round          int
	WasHome        bool
	KickoffAt      time.Time

	TotalPoints   int
	Minutes       int
	GoalsScored   int
	Assists       int
	CleanSheets   int
	GoalsConceded int
	YellowCards   int
	RedCards      int
	Bonus         int
	Influence     float64
	Creativity    float64
	Threat        float64

	TeamHScore *int
	TeamAScore *int
	Value      int
}

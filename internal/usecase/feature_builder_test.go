package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/team"
)

func TestBuildPlayerRows_HomeAwayAverages(t *testing.T) {
	t.Parallel()

	p := ExternalPlayer{ID: 10, Status: "a", Form: 3.2}
	summary := ExternalPlayerSummary{
		History: []ExternalHistoryRecord{
			{WasHome: true, TotalPoints: 4, Minutes: 90},
			{WasHome: false, TotalPoints: 2, Minutes: 45},
			{WasHome: true, TotalPoints: 6, Minutes: 60},
		},
		UpcomingFixtures: []ExternalUpcomingFixture{
			{Code: 101, EventID: 7, OppositionTeamID: 3, IsHome: true},
		},
	}

	rows := buildPlayerRows(p, summary, 7, nil, time.Now())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got=%d", len(rows))
	}

	row := rows[0]
	if row.Home.Points != 5.0 {
		t.Fatalf("expected home points mean 5.0, got=%v", row.Home.Points)
	}
	if row.Home.Minutes != 75.0 {
		t.Fatalf("expected home minutes mean 75.0, got=%v", row.Home.Minutes)
	}
	if row.Away.Points != 2.0 {
		t.Fatalf("expected away points mean 2.0, got=%v", row.Away.Points)
	}
	if row.FixtureCode != 101 || row.OppositionTeamID != 3 || !row.IsHome {
		t.Fatalf("unexpected fixture fields: %+v", row)
	}
	if row.Response != nil {
		t.Fatalf("new row must be pending")
	}
}

func TestBuildPlayerRows_NoVenueHistoryYieldsZeros(t *testing.T) {
	t.Parallel()

	summary := ExternalPlayerSummary{
		History: []ExternalHistoryRecord{
			{WasHome: true, TotalPoints: 8},
		},
		UpcomingFixtures: []ExternalUpcomingFixture{
			{Code: 55, EventID: 1, OppositionTeamID: 2, IsHome: false},
		},
	}

	rows := buildPlayerRows(ExternalPlayer{ID: 1}, summary, 1, nil, time.Now())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got=%d", len(rows))
	}
	if rows[0].Away != (feature.StatAverages{}) {
		t.Fatalf("expected zero away averages, got=%+v", rows[0].Away)
	}
}

func TestBuildPlayerRows_DoubleGameweek(t *testing.T) {
	t.Parallel()

	summary := ExternalPlayerSummary{
		UpcomingFixtures: []ExternalUpcomingFixture{
			{Code: 201, EventID: 12, OppositionTeamID: 4, IsHome: true},
			{Code: 202, EventID: 12, OppositionTeamID: 9, IsHome: false},
			{Code: 203, EventID: 13, OppositionTeamID: 1, IsHome: true},
		},
	}
	oppositions := map[int64]team.Opposition{
		4: {TeamID: 4, Strength: 3, GoalsFor: 1.5, GoalsAgainst: 1.2},
	}

	rows := buildPlayerRows(ExternalPlayer{ID: 2}, summary, 12, oppositions, time.Now())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for a double gameweek, got=%d", len(rows))
	}
	if rows[0].OppositionStrength != 3 || rows[0].OppositionGoalsFor != 1.5 {
		t.Fatalf("expected opposition enrichment on first row, got=%+v", rows[0])
	}
	if rows[1].OppositionStrength != 0 || rows[1].OppositionGoalsFor != 0 {
		t.Fatalf("missing opposition must stay zero, got=%+v", rows[1])
	}
}

func TestLastWindow_MostRecentFirst(t *testing.T) {
	t.Parallel()

	history := []ExternalHistoryRecord{
		{TotalPoints: 2},
		{TotalPoints: 9},
		{TotalPoints: 4},
		{TotalPoints: 7},
	}

	got := lastWindow(history, func(r ExternalHistoryRecord) int { return r.TotalPoints })
	want := []int{7, 4, 9}
	for i, w := range want {
		if got[i] == nil || *got[i] != w {
			t.Fatalf("slot %d: expected %d, got=%v", i, w, got[i])
		}
	}
}

func TestLastWindow_ShortHistoryLeavesNils(t *testing.T) {
	t.Parallel()

	history := []ExternalHistoryRecord{{TotalPoints: 5}}
	got := lastWindow(history, func(r ExternalHistoryRecord) int { return r.TotalPoints })

	if got[0] == nil || *got[0] != 5 {
		t.Fatalf("slot 0: expected 5, got=%v", got[0])
	}
	if got[1] != nil || got[2] != nil {
		t.Fatalf("expected nil slots for missing appearances, got=%v %v", got[1], got[2])
	}
}

func TestAverageStats_Rounding(t *testing.T) {
	t.Parallel()

	records := []ExternalHistoryRecord{
		{TotalPoints: 1, Influence: 10.1},
		{TotalPoints: 2, Influence: 10.2},
		{TotalPoints: 2, Influence: 10.2},
	}

	avg := averageStats(records)
	if avg.Points != 1.67 {
		t.Fatalf("expected points mean 1.67, got=%v", avg.Points)
	}
	if avg.Influence != 10.17 {
		t.Fatalf("expected influence mean 10.17, got=%v", avg.Influence)
	}
}

package usecase

import (
	"math"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/team"
)

// buildPlayerRows turns one player's feed summary into feature rows, one per
// upcoming fixture in the target event. Double gameweeks therefore yield
// several rows for the same player.
func buildPlayerRows(
	p ExternalPlayer,
	summary ExternalPlayerSummary,
	eventID int,
	oppositions map[int64]team.Opposition,
	collectedAt time.Time,
) []feature.Row {
	home := averageStats(filterByVenue(summary.History, true))
	away := averageStats(filterByVenue(summary.History, false))
	lastPoints := lastWindow(summary.History, func(r ExternalHistoryRecord) int { return r.TotalPoints })
	lastMinutes := lastWindow(summary.History, func(r ExternalHistoryRecord) int { return r.Minutes })

	rows := make([]feature.Row, 0, 1)
	for _, f := range summary.UpcomingFixtures {
		if f.EventID != eventID {
			continue
		}

		row := feature.Row{
			PlayerID:         p.ID,
			EventID:          eventID,
			CollectedAt:      collectedAt,
			ChanceOfPlaying:  p.ChanceOfPlaying,
			Form:             p.Form,
			Status:           p.Status,
			FixtureCode:      f.Code,
			OppositionTeamID: f.OppositionTeamID,
			IsHome:           f.IsHome,
			KickoffAt:        f.KickoffAt,
			Home:             home,
			Away:             away,
			LastPoints:       lastPoints,
			LastMinutes:      lastMinutes,
		}
		if opp, ok := oppositions[f.OppositionTeamID]; ok {
			row.OppositionStrength = opp.Strength
			row.OppositionGoalsFor = opp.GoalsFor
			row.OppositionGoalsAgainst = opp.GoalsAgainst
		}
		rows = append(rows, row)
	}
	return rows
}

func filterByVenue(records []ExternalHistoryRecord, home bool) []ExternalHistoryRecord {
	out := make([]ExternalHistoryRecord, 0, len(records))
	for _, r := range records {
		if r.WasHome == home {
			out = append(out, r)
		}
	}
	return out
}

// averageStats computes per-column means over the given records, rounded to
// two decimals. An empty subset yields all zeros.
func averageStats(records []ExternalHistoryRecord) feature.StatAverages {
	if len(records) == 0 {
		return feature.StatAverages{}
	}

	var sum feature.StatAverages
	for _, r := range records {
		sum.Points += float64(r.TotalPoints)
		sum.Minutes += float64(r.Minutes)
		sum.GoalsScored += float64(r.GoalsScored)
		sum.Assists += float64(r.Assists)
		sum.CleanSheets += float64(r.CleanSheets)
		sum.GoalsConceded += float64(r.GoalsConceded)
		sum.YellowCards += float64(r.YellowCards)
		sum.RedCards += float64(r.RedCards)
		sum.Bonus += float64(r.Bonus)
		sum.Influence += r.Influence
		sum.Creativity += r.Creativity
		sum.Threat += r.Threat
	}

	n := float64(len(records))
	return feature.StatAverages{
		Points:        round2(sum.Points / n),
		Minutes:       round2(sum.Minutes / n),
		GoalsScored:   round2(sum.GoalsScored / n),
		Assists:       round2(sum.Assists / n),
		CleanSheets:   round2(sum.CleanSheets / n),
		GoalsConceded: round2(sum.GoalsConceded / n),
		YellowCards:   round2(sum.YellowCards / n),
		RedCards:      round2(sum.RedCards / n),
		Bonus:         round2(sum.Bonus / n),
		Influence:     round2(sum.Influence / n),
		Creativity:    round2(sum.Creativity / n),
		Threat:        round2(sum.Threat / n),
	}
}

// lastWindow picks up to the final three records and reverses them, so index
// 0 holds the most recent appearance.
func lastWindow(records []ExternalHistoryRecord, pick func(ExternalHistoryRecord) int) [3]*int {
	var out [3]*int
	for i := 0; i < 3 && i < len(records); i++ {
		v := pick(records[len(records)-1-i])
		out[i] = &v
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

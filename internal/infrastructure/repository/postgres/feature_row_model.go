package postgres

import (
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
)

type featureRowTableModel struct {
	EntryID int64 `db:"entry_id"`
	featureRowInsertModel
}

type featureRowInsertModel struct {
	PlayerID    int64     `db:"player_id"`
	EventID     int       `db:"event_id"`
	CollectedAt time.Time `db:"collected_at"`

	ChanceOfPlaying *int    `db:"chance_of_playing"`
	Form            float64 `db:"form"`
	Status          string  `db:"status"`

	FixtureCode int64     `db:"fixture_code"`
	Opposition  int64     `db:"opposition"`
	IsHome      bool      `db:"is_home"`
	KickoffTime time.Time `db:"kickoff_time"`

	PointsH        float64 `db:"points_h"`
	MinutesH       float64 `db:"minutes_h"`
	GoalsScoredH   float64 `db:"goals_scored_h"`
	AssistsH       float64 `db:"assists_h"`
	CleanSheetsH   float64 `db:"clean_sheets_h"`
	GoalsConcededH float64 `db:"goals_conceded_h"`
	YellowCardsH   float64 `db:"yellow_cards_h"`
	RedCardsH      float64 `db:"red_cards_h"`
	BonusH         float64 `db:"bonus_h"`
	InfluenceH     float64 `db:"influence_h"`
	CreativityH    float64 `db:"creativity_h"`
	ThreatH        float64 `db:"threat_h"`

	PointsA        float64 `db:"points_a"`
	MinutesA       float64 `db:"minutes_a"`
	GoalsScoredA   float64 `db:"goals_scored_a"`
	AssistsA       float64 `db:"assists_a"`
	CleanSheetsA   float64 `db:"clean_sheets_a"`
	GoalsConcededA float64 `db:"goals_conceded_a"`
	YellowCardsA   float64 `db:"yellow_cards_a"`
	RedCardsA      float64 `db:"red_cards_a"`
	BonusA         float64 `db:"bonus_a"`
	InfluenceA     float64 `db:"influence_a"`
	CreativityA    float64 `db:"creativity_a"`
	ThreatA        float64 `db:"threat_a"`

	Points1  *int `db:"points_1"`
	Points2  *int `db:"points_2"`
	Points3  *int `db:"points_3"`
	Minutes1 *int `db:"minutes_1"`
	Minutes2 *int `db:"minutes_2"`
	Minutes3 *int `db:"minutes_3"`

	OppositionStrength int     `db:"opposition_strength"`
	OppositionGF       float64 `db:"opposition_gf"`
	OppositionGA       float64 `db:"opposition_ga"`

	Response *int `db:"response"`
}

func newFeatureRowInsertModel(row feature.Row) featureRowInsertModel {
	return featureRowInsertModel{
		PlayerID:    row.PlayerID,
		EventID:     row.EventID,
		CollectedAt: row.CollectedAt,

		ChanceOfPlaying: row.ChanceOfPlaying,
		Form:            row.Form,
		Status:          row.Status,

		FixtureCode: row.FixtureCode,
		Opposition:  row.OppositionTeamID,
		IsHome:      row.IsHome,
		KickoffTime: row.KickoffAt,

		PointsH:        row.Home.Points,
		MinutesH:       row.Home.Minutes,
		GoalsScoredH:   row.Home.GoalsScored,
		AssistsH:       row.Home.Assists,
		CleanSheetsH:   row.Home.CleanSheets,
		GoalsConcededH: row.Home.GoalsConceded,
		YellowCardsH:   row.Home.YellowCards,
		RedCardsH:      row.Home.RedCards,
		BonusH:         row.Home.Bonus,
		InfluenceH:     row.Home.Influence,
		CreativityH:    row.Home.Creativity,
		ThreatH:        row.Home.Threat,

		PointsA:        row.Away.Points,
		MinutesA:       row.Away.Minutes,
		GoalsScoredA:   row.Away.GoalsScored,
		AssistsA:       row.Away.Assists,
		CleanSheetsA:   row.Away.CleanSheets,
		GoalsConcededA: row.Away.GoalsConceded,
		YellowCardsA:   row.Away.YellowCards,
		RedCardsA:      row.Away.RedCards,
		BonusA:         row.Away.Bonus,
		InfluenceA:     row.Away.Influence,
		CreativityA:    row.Away.Creativity,
		ThreatA:        row.Away.Threat,

		Points1:  row.LastPoints[0],
		Points2:  row.LastPoints[1],
		Points3:  row.LastPoints[2],
		Minutes1: row.LastMinutes[0],
		Minutes2: row.LastMinutes[1],
		Minutes3: row.LastMinutes[2],

		OppositionStrength: row.OppositionStrength,
		OppositionGF:       row.OppositionGoalsFor,
		OppositionGA:       row.OppositionGoalsAgainst,

		Response: row.Response,
	}
}

func (m featureRowTableModel) toDomain() feature.Row {
	return feature.Row{
		EntryID:     m.EntryID,
		PlayerID:    m.PlayerID,
		EventID:     m.EventID,
		CollectedAt: m.CollectedAt,

		ChanceOfPlaying: m.ChanceOfPlaying,
		Form:            m.Form,
		Status:          m.Status,

		FixtureCode:      m.FixtureCode,
		OppositionTeamID: m.Opposition,
		IsHome:           m.IsHome,
		KickoffAt:        m.KickoffTime,

		Home: feature.StatAverages{
			Points:        m.PointsH,
			Minutes:       m.MinutesH,
			GoalsScored:   m.GoalsScoredH,
			Assists:       m.AssistsH,
			CleanSheets:   m.CleanSheetsH,
			GoalsConceded: m.GoalsConcededH,
			YellowCards:   m.YellowCardsH,
			RedCards:      m.RedCardsH,
			Bonus:         m.BonusH,
			Influence:     m.InfluenceH,
			Creativity:    m.CreativityH,
			Threat:        m.ThreatH,
		},
		Away: feature.StatAverages{
			Points:        m.PointsA,
			Minutes:       m.MinutesA,
			GoalsScored:   m.GoalsScoredA,
			Assists:       m.AssistsA,
			CleanSheets:   m.CleanSheetsA,
			GoalsConceded: m.GoalsConcededA,
			YellowCards:   m.YellowCardsA,
			RedCards:      m.RedCardsA,
			Bonus:         m.BonusA,
			Influence:     m.InfluenceA,
			Creativity:    m.CreativityA,
			Threat:        m.ThreatA,
		},

		LastPoints:  [3]*int{m.Points1, m.Points2, m.Points3},
		LastMinutes: [3]*int{m.Minutes1, m.Minutes2, m.Minutes3},

		OppositionStrength:     m.OppositionStrength,
		OppositionGoalsFor:     m.OppositionGF,
		OppositionGoalsAgainst: m.OppositionGA,

		Response: m.Response,
	}
}

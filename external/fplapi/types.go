package fplapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/usecase"
)

type bootstrapEnvelope struct {
	Events       []wireEvent       `json:"events"`
	Teams        []wireTeam        `json:"teams"`
	Elements     []wireElement     `json:"elements"`
	ElementTypes []wireElementType `json:"element_types"`
}

type wireEvent struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DeadlineTime string `json:"deadline_time"`
	Finished     bool   `json:"finished"`
	DataChecked  bool   `json:"data_checked"`
	IsCurrent    bool   `json:"is_current"`
	IsNext       bool   `json:"is_next"`
}

type wireTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

type wireElementType struct {
	ID           int    `json:"id"`
	SingularName string `json:"singular_name"`
}

type wireElement struct {
	ID              int64  `json:"id"`
	Team            int64  `json:"team"`
	ElementType     int    `json:"element_type"`
	FirstName       string `json:"first_name"`
	SecondName      string `json:"second_name"`
	WebName         string `json:"web_name"`
	NowCost         int    `json:"now_cost"`
	Status          string `json:"status"`
	Form            string `json:"form"`
	ChanceOfPlaying *int   `json:"chance_of_playing_this_round"`
}

type summaryEnvelope struct {
	Fixtures []wireFixture `json:"fixtures"`
	History  []wireHistory `json:"history"`
}

type wireFixture struct {
	ID          int64   `json:"id"`
	Event       *int    `json:"event"`
	TeamH       int64   `json:"team_h"`
	TeamA       int64   `json:"team_a"`
	IsHome      bool    `json:"is_home"`
	KickoffTime *string `json:"kickoff_time"`
	Difficulty  int     `json:"difficulty"`
}

type wireHistory struct {
	Fixture       int64  `json:"fixture"`
	OpponentTeam  int64  `json:"opponent_team"`
	Round         int    `json:"round"`
	WasHome       bool   `json:"was_home"`
	KickoffTime   string `json:"kickoff_time"`
	TotalPoints   int    `json:"total_points"`
	Minutes       int    `json:"minutes"`
	GoalsScored   int    `json:"goals_scored"`
	Assists       int    `json:"assists"`
	CleanSheets   int    `json:"clean_sheets"`
	GoalsConceded int    `json:"goals_conceded"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	Bonus         int    `json:"bonus"`
	Influence     string `json:"influence"`
	Creativity    string `json:"creativity"`
	Threat        string `json:"threat"`
	TeamHScore    *int   `json:"team_h_score"`
	TeamAScore    *int   `json:"team_a_score"`
	Value         int    `json:"value"`
}

func mapBootstrap(env bootstrapEnvelope) usecase.ExternalBootstrap {
	out := usecase.ExternalBootstrap{
		Events:        make([]usecase.ExternalEvent, 0, len(env.Events)),
		Teams:         make([]usecase.ExternalTeam, 0, len(env.Teams)),
		Players:       make([]usecase.ExternalPlayer, 0, len(env.Elements)),
		PositionTypes: make([]usecase.ExternalPositionType, 0, len(env.ElementTypes)),
	}

	for _, e := range env.Events {
		out.Events = append(out.Events, usecase.ExternalEvent{
			ID:           e.ID,
			Name:         e.Name,
			DeadlineTime: parseFeedTime(e.DeadlineTime),
			Finished:     e.Finished,
			DataChecked:  e.DataChecked,
			IsCurrent:    e.IsCurrent,
			IsNext:       e.IsNext,
		})
	}
	for _, t := range env.Teams {
		out.Teams = append(out.Teams, usecase.ExternalTeam{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Strength:  t.Strength,
		})
	}
	for _, et := range env.ElementTypes {
		out.PositionTypes = append(out.PositionTypes, usecase.ExternalPositionType{
			ID:           et.ID,
			SingularName: et.SingularName,
		})
	}
	for _, el := range env.Elements {
		out.Players = append(out.Players, usecase.ExternalPlayer{
			ID:              el.ID,
			TeamID:          el.Team,
			ElementType:     el.ElementType,
			FirstName:       el.FirstName,
			SecondName:      el.SecondName,
			WebName:         el.WebName,
			NowCost:         el.NowCost,
			Status:          el.Status,
			Form:            parseFeedDecimal(el.Form),
			ChanceOfPlaying: el.ChanceOfPlaying,
		})
	}

	return out
}

func mapSummary(env summaryEnvelope) usecase.ExternalPlayerSummary {
	out := usecase.ExternalPlayerSummary{
		UpcomingFixtures: make([]usecase.ExternalUpcomingFixture, 0, len(env.Fixtures)),
		History:          make([]usecase.ExternalHistoryRecord, 0, len(env.History)),
	}

	for _, f := range env.Fixtures {
		if f.Event == nil {
			// Unscheduled fixture, no gameweek assigned yet.
			continue
		}
		opposition := f.TeamH
		if f.IsHome {
			opposition = f.TeamA
		}
		var kickoff time.Time
		if f.KickoffTime != nil {
			kickoff = parseFeedTime(*f.KickoffTime)
		}
		out.UpcomingFixtures = append(out.UpcomingFixtures, usecase.ExternalUpcomingFixture{
			Code:             f.ID,
			EventID:          *f.Event,
			OppositionTeamID: opposition,
			IsHome:           f.IsHome,
			KickoffAt:        kickoff,
			Difficulty:       f.Difficulty,
		})
	}

	for _, h := range env.History {
		out.History = append(out.History, usecase.ExternalHistoryRecord{
			FixtureCode:    h.Fixture,
			OpponentTeamID: h.OpponentTeam,
			Round:          h.Round,
			WasHome:        h.WasHome,
			KickoffAt:      parseFeedTime(h.KickoffTime),
			TotalPoints:    h.TotalPoints,
			Minutes:        h.Minutes,
			GoalsScored:    h.GoalsScored,
			Assists:        h.Assists,
			CleanSheets:    h.CleanSheets,
			GoalsConceded:  h.GoalsConceded,
			YellowCards:    h.YellowCards,
			RedCards:       h.RedCards,
			Bonus:          h.Bonus,
			Influence:      parseFeedDecimal(h.Influence),
			Creativity:     parseFeedDecimal(h.Creativity),
			Threat:         parseFeedDecimal(h.Threat),
			TeamHScore:     h.TeamHScore,
			TeamAScore:     h.TeamAScore,
			Value:          h.Value,
		})
	}

	return out
}

// parseFeedDecimal reads the feed's decimal-as-string columns. Blank or
// malformed values count as zero rather than failing the fetch.
func parseFeedDecimal(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFeedTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

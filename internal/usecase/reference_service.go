package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/event"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/player"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/team"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

// ReferenceService keeps the relational mirror of the game feed fresh:
// events, teams, position types and the season-wide player pool.
type ReferenceService struct {
	feed          SnapshotFeedProvider
	eventRepo     event.Repository
	teamRepo      team.Repository
	playerRepo    player.Repository
	positionRepo  player.PositionRepository
	logger        *logging.Logger
	lookupWorkers int
}

func NewReferenceService(
	feed SnapshotFeedProvider,
	eventRepo event.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	positionRepo player.PositionRepository,
	logger *logging.Logger,
) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReferenceService{
		feed:          feed,
		eventRepo:     eventRepo,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		positionRepo:  positionRepo,
		logger:        logger,
		lookupWorkers: 8,
	}
}

// Refresh replaces the stored reference tables with the feed's current
// bootstrap payload. Initial costs already on record are carried forward;
// players seen for the first time get theirs looked up from the price in
// their earliest history record.
func (s *ReferenceService) Refresh(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.Refresh")
	defer span.End()

	bootstrap, err := s.feed.FetchBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch bootstrap: %v", ErrDependencyUnavailable, err)
	}
	if len(bootstrap.Events) == 0 || len(bootstrap.Players) == 0 {
		return fmt.Errorf("%w: bootstrap payload is incomplete", ErrInvalidInput)
	}

	events := make([]event.Event, 0, len(bootstrap.Events))
	for _, e := range bootstrap.Events {
		events = append(events, event.Event{
			ID:           e.ID,
			Name:         e.Name,
			DeadlineTime: e.DeadlineTime,
			Finished:     e.Finished,
			DataChecked:  e.DataChecked,
			IsCurrent:    e.IsCurrent,
			IsNext:       e.IsNext,
		})
	}

	teams := make([]team.Team, 0, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teams = append(teams, team.Team{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Strength:  t.Strength,
		})
	}

	positions := make([]player.PositionType, 0, len(bootstrap.PositionTypes))
	for _, pt := range bootstrap.PositionTypes {
		positions = append(positions, player.PositionType{
			ID:           pt.ID,
			SingularName: pt.SingularName,
		})
	}

	players := make([]player.Player, 0, len(bootstrap.Players))
	for _, p := range bootstrap.Players {
		players = append(players, player.Player{
			ID:          p.ID,
			TeamID:      p.TeamID,
			ElementType: p.ElementType,
			FirstName:   p.FirstName,
			SecondName:  p.SecondName,
			WebName:     p.WebName,
			NowCost:     p.NowCost,
		})
	}

	stored, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list stored players: %w", err)
	}
	players = player.MergeInitialCosts(players, stored)
	s.fillMissingInitialCosts(ctx, players)

	if err := s.eventRepo.ReplaceAll(ctx, events); err != nil {
		return fmt.Errorf("replace events: %w", err)
	}
	if err := s.teamRepo.ReplaceAll(ctx, teams); err != nil {
		return fmt.Errorf("replace teams: %w", err)
	}
	if err := s.positionRepo.ReplaceAll(ctx, positions); err != nil {
		return fmt.Errorf("replace position types: %w", err)
	}
	if err := s.playerRepo.ReplaceAll(ctx, players); err != nil {
		return fmt.Errorf("replace players: %w", err)
	}

	s.logger.InfoContext(ctx, "reference snapshot refreshed",
		"events", len(events),
		"teams", len(teams),
		"players", len(players),
	)
	return nil
}

// fillMissingInitialCosts resolves the debut price for players without a
// stored initial cost. Lookup failures leave the cost unset; the next run
// retries.
func (s *ReferenceService) fillMissingInitialCosts(ctx context.Context, players []player.Player) {
	missing := make([]int, 0)
	for i := range players {
		if players[i].InitialCost == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(s.lookupWorkers).WithContext(ctx)
	for _, idx := range missing {
		idx := idx
		p.Go(func(ctx context.Context) error {
			summary, err := s.feed.FetchPlayerSummary(ctx, players[idx].ID)
			if err != nil {
				s.logger.WarnContext(ctx, "initial cost lookup failed",
					"player_id", players[idx].ID,
					"error", err,
				)
				return nil
			}
			if len(summary.History) == 0 {
				return nil
			}
			cost := summary.History[0].Value
			mu.Lock()
			players[idx].InitialCost = &cost
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()
}

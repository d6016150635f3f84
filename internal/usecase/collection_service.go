package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/event"
	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

// CollectState reports what a collection run did.
type CollectState string

const (
	CollectStateCollected  CollectState = "collected"
	CollectStateInProgress CollectState = "in_progress"
	CollectStateSeasonOver CollectState = "season_over"
)

type CollectResult struct {
	State       CollectState
	EventID     int
	RowCount    int
	PlayerCount int
	Skipped     int
}

type CollectionConfig struct {
	MaxWorkers         int
	AbortOnPlayerError bool
}

// CollectionService snapshots the full player pool against the next
// gameweek and swaps it in for the previous pending batch.
type CollectionService struct {
	feed        SnapshotFeedProvider
	featureRepo feature.Repository
	opposition  *OppositionService
	cfg         CollectionConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewCollectionService(
	feed SnapshotFeedProvider,
	featureRepo feature.Repository,
	opposition *OppositionService,
	cfg CollectionConfig,
	logger *logging.Logger,
) *CollectionService {
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CollectionService{
		feed:        feed,
		featureRepo: featureRepo,
		opposition:  opposition,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Collect builds feature rows for every player's fixtures in the next
// unfinished event and atomically replaces the pending batch. It holds off
// while a past-deadline gameweek is still unresolved, so a snapshot never
// mixes played and unplayed fixtures.
func (s *CollectionService) Collect(ctx context.Context) (CollectResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Collect")
	defer span.End()

	bootstrap, err := s.feed.FetchBootstrap(ctx)
	if err != nil {
		return CollectResult{}, fmt.Errorf("%w: fetch bootstrap: %v", ErrDependencyUnavailable, err)
	}

	events := make([]event.Event, 0, len(bootstrap.Events))
	for _, e := range bootstrap.Events {
		events = append(events, event.Event{ID: e.ID, DeadlineTime: e.DeadlineTime, Finished: e.Finished})
	}

	nextID := event.NextEventID(events)
	if nextID == nil {
		s.logger.InfoContext(ctx, "collection skipped, season over")
		return CollectResult{State: CollectStateSeasonOver}, nil
	}
	if event.AnyInProgress(events, s.now()) {
		s.logger.InfoContext(ctx, "collection suppressed, gameweek in progress", "event_id", *nextID)
		return CollectResult{State: CollectStateInProgress, EventID: *nextID}, nil
	}

	oppositions := s.opposition.Build(ctx, bootstrap)
	collectedAt := s.now().UTC()

	rows := make([]feature.Row, 0, len(bootstrap.Players))
	var mu sync.Mutex
	var skipped atomic.Int64
	var abortErr atomic.Pointer[playerError]

	workerPool, err := ants.NewPool(s.cfg.MaxWorkers)
	if err != nil {
		return CollectResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var wg sync.WaitGroup
	for _, p := range bootstrap.Players {
		p := p
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if s.cfg.AbortOnPlayerError && abortErr.Load() != nil {
				return
			}

			summary, err := s.feed.FetchPlayerSummary(ctx, p.ID)
			if err != nil {
				if s.cfg.AbortOnPlayerError {
					abortErr.CompareAndSwap(nil, &playerError{playerID: p.ID, err: err})
					return
				}
				skipped.Add(1)
				s.logger.WarnContext(ctx, "player summary fetch failed, skipping",
					"player_id", p.ID,
					"error", err,
				)
				return
			}

			playerRows := buildPlayerRows(p, summary, *nextID, oppositions, collectedAt)
			if len(playerRows) == 0 {
				return
			}
			mu.Lock()
			rows = append(rows, playerRows...)
			mu.Unlock()
		}
		if err := workerPool.Submit(task); err != nil {
			wg.Done()
			return CollectResult{}, fmt.Errorf("submit collection task: %w", err)
		}
	}
	wg.Wait()

	if pe := abortErr.Load(); pe != nil {
		return CollectResult{}, fmt.Errorf("%w: player %d summary: %v", ErrDependencyUnavailable, pe.playerID, pe.err)
	}

	if err := s.featureRepo.ReplacePending(ctx, rows); err != nil {
		return CollectResult{}, fmt.Errorf("replace pending rows: %w", err)
	}

	result := CollectResult{
		State:       CollectStateCollected,
		EventID:     *nextID,
		RowCount:    len(rows),
		PlayerCount: len(bootstrap.Players),
		Skipped:     int(skipped.Load()),
	}
	s.logger.InfoContext(ctx, "collection finished",
		"event_id", result.EventID,
		"rows", result.RowCount,
		"players", result.PlayerCount,
		"skipped", result.Skipped,
	)
	return result, nil
}

type playerError struct {
	playerID int64
	err      error
}

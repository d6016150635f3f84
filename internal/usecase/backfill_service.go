package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

type BackfillResult struct {
	Examined int
	Filled   int
	Purged   int
	Failed   int
}

type BackfillConfig struct {
	GraceWindow time.Duration
	MaxWorkers  int
}

// BackfillService resolves pending rows whose fixture is comfortably in the
// past: the outcome is copied from the player's history, and rows whose
// fixture never produced a record (postponed, player transferred out) are
// purged. The grace window leaves the feed time to publish final stats.
type BackfillService struct {
	feed        SnapshotFeedProvider
	featureRepo feature.Repository
	cfg         BackfillConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewBackfillService(
	feed SnapshotFeedProvider,
	featureRepo feature.Repository,
	cfg BackfillConfig,
	logger *logging.Logger,
) *BackfillService {
	if cfg.GraceWindow <= 0 {
		cfg.GraceWindow = 12 * time.Hour
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{
		feed:        feed,
		featureRepo: featureRepo,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Resolve fills or purges every eligible pending row. One row's failure does
// not stop the rest; failures are counted and retried on the next run.
func (s *BackfillService) Resolve(ctx context.Context) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.Resolve")
	defer span.End()

	cutoff := s.now().Add(-s.cfg.GraceWindow)
	pending, err := s.featureRepo.ListPending(ctx, cutoff)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("list pending rows: %w", err)
	}

	eligible := make([]feature.Row, 0, len(pending))
	for _, row := range pending {
		if row.KickoffAt.IsZero() {
			// Kickoff not scheduled yet; the row stays pending until the
			// feed dates the fixture.
			continue
		}
		eligible = append(eligible, row)
	}
	if len(eligible) == 0 {
		return BackfillResult{}, nil
	}

	var filled, purged, failed atomic.Int64

	p := pool.New().WithMaxGoroutines(s.cfg.MaxWorkers).WithContext(ctx)
	for _, row := range eligible {
		row := row
		p.Go(func(ctx context.Context) error {
			if err := s.resolveRow(ctx, row, &filled, &purged); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "backfill resolution failed",
					"entry_id", row.EntryID,
					"player_id", row.PlayerID,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = p.Wait()

	result := BackfillResult{
		Examined: len(eligible),
		Filled:   int(filled.Load()),
		Purged:   int(purged.Load()),
		Failed:   int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "backfill finished",
		"examined", result.Examined,
		"filled", result.Filled,
		"purged", result.Purged,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *BackfillService) resolveRow(ctx context.Context, row feature.Row, filled, purged *atomic.Int64) error {
	summary, err := s.feed.FetchPlayerSummary(ctx, row.PlayerID)
	if err != nil {
		return fmt.Errorf("fetch player summary: %w", err)
	}

	for _, rec := range summary.History {
		if rec.FixtureCode != row.FixtureCode {
			continue
		}
		if err := s.featureRepo.SetOutcome(ctx, row.EntryID, rec.TotalPoints); err != nil {
			return fmt.Errorf("set outcome: %w", err)
		}
		filled.Add(1)
		return nil
	}

	// No history record past the grace window means the fixture will never
	// resolve for this player.
	if err := s.featureRepo.Delete(ctx, row.EntryID); err != nil {
		return fmt.Errorf("purge row: %w", err)
	}
	purged.Add(1)
	return nil
}

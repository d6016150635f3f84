package usecase

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/team"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

// OppositionService derives a goals-for/against proxy per team from the
// match history of one representative player: the first player the feed
// lists for that team. team_h_score averages approximate goals scored at
// home and team_a_score goals conceded, which is coarse but stable across
// the season.
type OppositionService struct {
	feed    SnapshotFeedProvider
	logger  *logging.Logger
	workers int
}

func NewOppositionService(feed SnapshotFeedProvider, workers int, logger *logging.Logger) *OppositionService {
	if workers < 1 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OppositionService{feed: feed, logger: logger, workers: workers}
}

// Build returns the enrichment keyed by team id. Teams whose representative
// lookup fails keep static strength only; downstream joins treat missing
// averages as zero.
func (s *OppositionService) Build(ctx context.Context, bootstrap ExternalBootstrap) map[int64]team.Opposition {
	ctx, span := startUsecaseSpan(ctx, "usecase.OppositionService.Build")
	defer span.End()

	representatives := make(map[int64]int64, len(bootstrap.Teams))
	for _, p := range bootstrap.Players {
		if _, ok := representatives[p.TeamID]; !ok {
			representatives[p.TeamID] = p.ID
		}
	}

	out := make(map[int64]team.Opposition, len(bootstrap.Teams))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, t := range bootstrap.Teams {
		t := t
		p.Go(func(ctx context.Context) error {
			opp := team.Opposition{TeamID: t.ID, Strength: t.Strength}

			if repID, ok := representatives[t.ID]; ok {
				summary, err := s.feed.FetchPlayerSummary(ctx, repID)
				if err != nil {
					s.logger.WarnContext(ctx, "opposition lookup failed",
						"team_id", t.ID,
						"player_id", repID,
						"error", err,
					)
				} else {
					opp.GoalsFor, opp.GoalsAgainst = teamGoalAverages(summary.History)
				}
			}

			mu.Lock()
			out[t.ID] = opp
			mu.Unlock()
			return nil
		})
	}
	_ = p.Wait()

	return out
}

func teamGoalAverages(records []ExternalHistoryRecord) (gf, ga float64) {
	var sumFor, sumAgainst float64
	var nFor, nAgainst int
	for _, r := range records {
		if r.TeamHScore != nil {
			sumFor += float64(*r.TeamHScore)
			nFor++
		}
		if r.TeamAScore != nil {
			sumAgainst += float64(*r.TeamAScore)
			nAgainst++
		}
	}
	if nFor > 0 {
		gf = round2(sumFor / float64(nFor))
	}
	if nAgainst > 0 {
		ga = round2(sumAgainst / float64(nAgainst))
	}
	return gf, ga
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
)

const (
	JobRefresh  = "refresh"
	JobBackfill = "backfill"
	JobCollect  = "collect"
)

// DefaultJobOrder is a full run: refresh reference data so backfill and
// collection see a consistent calendar, settle past fixtures, then snapshot
// the next gameweek.
var DefaultJobOrder = []string{JobRefresh, JobBackfill, JobCollect}

type RunReport struct {
	Jobs       []string        `json:"jobs"`
	Collect    *CollectResult  `json:"collect,omitempty"`
	Backfill   *BackfillResult `json:"backfill,omitempty"`
	DurationMS int64           `json:"duration_ms"`
}

// JobService sequences the collector's jobs for a single invocation.
type JobService struct {
	reference  *ReferenceService
	backfill   *BackfillService
	collection *CollectionService
	logger     *logging.Logger
	now        func() time.Time
}

func NewJobService(
	reference *ReferenceService,
	backfill *BackfillService,
	collection *CollectionService,
	logger *logging.Logger,
) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobService{
		reference:  reference,
		backfill:   backfill,
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

// RunAll performs a full run in the default order.
func (s *JobService) RunAll(ctx context.Context) (RunReport, error) {
	return s.Run(ctx, DefaultJobOrder)
}

// Run executes the named jobs in the order given. Any job failing aborts the
// rest of the run; partial progress stays committed.
func (s *JobService) Run(ctx context.Context, jobs []string) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Run")
	defer span.End()

	if len(jobs) == 0 {
		jobs = DefaultJobOrder
	}

	started := s.now()
	report := RunReport{Jobs: jobs}
	for _, job := range jobs {
		switch job {
		case JobRefresh:
			if err := s.reference.Refresh(ctx); err != nil {
				return report, fmt.Errorf("refresh job: %w", err)
			}
		case JobBackfill:
			result, err := s.backfill.Resolve(ctx)
			if err != nil {
				return report, fmt.Errorf("backfill job: %w", err)
			}
			report.Backfill = &result
		case JobCollect:
			result, err := s.collection.Collect(ctx)
			if err != nil {
				return report, fmt.Errorf("collect job: %w", err)
			}
			report.Collect = &result
		default:
			return report, fmt.Errorf("%w: unknown job %q", ErrInvalidInput, job)
		}
	}
	elapsed := s.now().Sub(started)
	report.DurationMS = elapsed.Milliseconds()

	s.logger.InfoContext(ctx, "run finished", "jobs", jobs, "duration", elapsed)
	return report, nil
}

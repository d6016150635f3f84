package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
)

func newBackfillFixture(feed *stubFeed, repo *stubFeatureRepo, now time.Time) *BackfillService {
	svc := NewBackfillService(feed, repo, BackfillConfig{GraceWindow: 12 * time.Hour, MaxWorkers: 2}, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestBackfillService_Resolve_FillsAndPurges(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubFeatureRepo{
		pending: []feature.Row{
			{EntryID: 1, PlayerID: 100, FixtureCode: 9001, KickoffAt: now.Add(-24 * time.Hour)},
			{EntryID: 2, PlayerID: 200, FixtureCode: 9002, KickoffAt: now.Add(-24 * time.Hour)},
			{EntryID: 3, PlayerID: 300, FixtureCode: 9003, KickoffAt: now.Add(-2 * time.Hour)},
		},
	}
	feed := &stubFeed{
		summaries: map[int64]ExternalPlayerSummary{
			100: {History: []ExternalHistoryRecord{{FixtureCode: 9001, TotalPoints: 11}}},
			200: {History: []ExternalHistoryRecord{{FixtureCode: 7777, TotalPoints: 4}}},
		},
	}

	result, err := newBackfillFixture(feed, repo, now).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.Examined != 2 {
		t.Fatalf("expected 2 examined rows, got=%d", result.Examined)
	}
	if result.Filled != 1 || repo.outcomes[1] != 11 {
		t.Fatalf("expected entry 1 filled with 11, got filled=%d outcomes=%v", result.Filled, repo.outcomes)
	}
	if result.Purged != 1 || len(repo.deleted) != 1 || repo.deleted[0] != 2 {
		t.Fatalf("expected entry 2 purged, got purged=%d deleted=%v", result.Purged, repo.deleted)
	}
	if _, ok := repo.outcomes[3]; ok {
		t.Fatalf("row inside the grace window must stay pending")
	}
}

func TestBackfillService_Resolve_UnscheduledKickoffStaysPending(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubFeatureRepo{
		pending: []feature.Row{
			{EntryID: 1, PlayerID: 100, FixtureCode: 9001},
			{EntryID: 2, PlayerID: 200, FixtureCode: 9002, KickoffAt: now.Add(-24 * time.Hour)},
		},
	}
	feed := &stubFeed{
		summaries: map[int64]ExternalPlayerSummary{
			200: {History: []ExternalHistoryRecord{{FixtureCode: 9002, TotalPoints: 5}}},
		},
	}

	result, err := newBackfillFixture(feed, repo, now).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.Examined != 1 {
		t.Fatalf("row without a kickoff date must not be examined, got=%d", result.Examined)
	}
	if result.Purged != 0 || len(repo.deleted) != 0 {
		t.Fatalf("row without a kickoff date must not be purged, deleted=%v", repo.deleted)
	}
	if _, ok := repo.outcomes[1]; ok {
		t.Fatalf("row without a kickoff date must stay pending, outcomes=%v", repo.outcomes)
	}
	if len(repo.pending) != 1 || repo.pending[0].EntryID != 1 {
		t.Fatalf("expected entry 1 still pending, got=%+v", repo.pending)
	}
}

func TestBackfillService_Resolve_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubFeatureRepo{
		pending: []feature.Row{
			{EntryID: 1, PlayerID: 100, FixtureCode: 9001, KickoffAt: now.Add(-24 * time.Hour)},
			{EntryID: 2, PlayerID: 200, FixtureCode: 9002, KickoffAt: now.Add(-24 * time.Hour)},
			{EntryID: 3, PlayerID: 300, FixtureCode: 9003, KickoffAt: now.Add(-2 * time.Hour)},
		},
	}
	feed := &stubFeed{
		summaries: map[int64]ExternalPlayerSummary{
			100: {History: []ExternalHistoryRecord{{FixtureCode: 9001, TotalPoints: 8}}},
			200: {History: []ExternalHistoryRecord{{FixtureCode: 7777, TotalPoints: 2}}},
		},
	}

	svc := newBackfillFixture(feed, repo, now)
	first, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("first Resolve error: %v", err)
	}
	if first.Filled != 1 || first.Purged != 1 {
		t.Fatalf("unexpected first run: %+v", first)
	}

	second, err := svc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if second.Examined != 0 || second.Filled != 0 || second.Purged != 0 {
		t.Fatalf("second run must be a noop, got=%+v", second)
	}
	if len(repo.outcomes) != 1 || len(repo.deleted) != 1 {
		t.Fatalf("second run must not touch rows again, outcomes=%v deleted=%v", repo.outcomes, repo.deleted)
	}
}

func TestBackfillService_Resolve_NoEligibleRows(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubFeatureRepo{
		pending: []feature.Row{
			{EntryID: 1, PlayerID: 100, FixtureCode: 1, KickoffAt: now.Add(-time.Hour)},
		},
	}

	result, err := newBackfillFixture(&stubFeed{}, repo, now).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.Examined != 0 {
		t.Fatalf("expected no eligible rows, got=%d", result.Examined)
	}
}

func TestBackfillService_Resolve_FetchFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC)
	repo := &stubFeatureRepo{
		pending: []feature.Row{
			{EntryID: 1, PlayerID: 100, FixtureCode: 9001, KickoffAt: now.Add(-24 * time.Hour)},
			{EntryID: 2, PlayerID: 200, FixtureCode: 9002, KickoffAt: now.Add(-24 * time.Hour)},
		},
	}
	feed := &stubFeed{
		summaries: map[int64]ExternalPlayerSummary{
			200: {History: []ExternalHistoryRecord{{FixtureCode: 9002, TotalPoints: 3}}},
		},
		summaryErrs: map[int64]error{
			100: fmt.Errorf("boom"),
		},
	}

	result, err := newBackfillFixture(feed, repo, now).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("expected 1 failed row, got=%d", result.Failed)
	}
	if result.Filled != 1 || repo.outcomes[2] != 3 {
		t.Fatalf("expected entry 2 filled with 3, got filled=%d outcomes=%v", result.Filled, repo.outcomes)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("failed fetch must not purge the row, deleted=%v", repo.deleted)
	}
}

func TestBackfillService_Resolve_ListError(t *testing.T) {
	t.Parallel()

	repo := &stubFeatureRepo{listErr: fmt.Errorf("db down")}
	if _, err := newBackfillFixture(&stubFeed{}, repo, time.Now()).Resolve(context.Background()); err == nil {
		t.Fatalf("expected error when listing pending rows fails")
	}
}

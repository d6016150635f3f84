package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-datacollector/internal/domain/feature"
)

type stubFeed struct {
	bootstrap    ExternalBootstrap
	bootstrapErr error
	summaries    map[int64]ExternalPlayerSummary
	summaryErrs  map[int64]error
}

func (s *stubFeed) FetchBootstrap(_ context.Context) (ExternalBootstrap, error) {
	return s.bootstrap, s.bootstrapErr
}

func (s *stubFeed) FetchPlayerSummary(_ context.Context, playerID int64) (ExternalPlayerSummary, error) {
	if err, ok := s.summaryErrs[playerID]; ok {
		return ExternalPlayerSummary{}, err
	}
	return s.summaries[playerID], nil
}

type stubFeatureRepo struct {
	mu       sync.Mutex
	pending  []feature.Row
	replaced [][]feature.Row
	outcomes map[int64]int
	deleted  []int64

	listErr    error
	replaceErr error
}

func (s *stubFeatureRepo) ListPending(_ context.Context, kickoffBefore time.Time) ([]feature.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]feature.Row, 0, len(s.pending))
	for _, row := range s.pending {
		if row.KickoffAt.Before(kickoffBefore) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubFeatureRepo) SetOutcome(_ context.Context, entryID int64, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcomes == nil {
		s.outcomes = make(map[int64]int)
	}
	s.outcomes[entryID] = points
	s.removePending(entryID)
	return nil
}

func (s *stubFeatureRepo) Delete(_ context.Context, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, entryID)
	s.removePending(entryID)
	return nil
}

func (s *stubFeatureRepo) removePending(entryID int64) {
	kept := s.pending[:0]
	for _, row := range s.pending {
		if row.EntryID != entryID {
			kept = append(kept, row)
		}
	}
	s.pending = kept
}

func (s *stubFeatureRepo) ReplacePending(_ context.Context, rows []feature.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = append(s.replaced, rows)
	return nil
}

func newCollectionFixture(feed *stubFeed, repo *stubFeatureRepo, now time.Time) *CollectionService {
	svc := NewCollectionService(feed, repo, NewOppositionService(feed, 2, nil), CollectionConfig{MaxWorkers: 2}, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCollectionService_Collect_ReplacesPending(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		bootstrap: ExternalBootstrap{
			Events: []ExternalEvent{
				{ID: 1, DeadlineTime: now.Add(-7 * 24 * time.Hour), Finished: true},
				{ID: 2, DeadlineTime: now.Add(24 * time.Hour)},
			},
			Teams: []ExternalTeam{
				{ID: 1, Strength: 4},
				{ID: 2, Strength: 2},
			},
			Players: []ExternalPlayer{
				{ID: 100, TeamID: 1, WebName: "Alpha"},
				{ID: 200, TeamID: 2, WebName: "Beta"},
			},
		},
		summaries: map[int64]ExternalPlayerSummary{
			100: {
				UpcomingFixtures: []ExternalUpcomingFixture{
					{Code: 9001, EventID: 2, OppositionTeamID: 2, IsHome: true, KickoffAt: now.Add(48 * time.Hour)},
				},
				History: []ExternalHistoryRecord{{WasHome: true, TotalPoints: 6}},
			},
			200: {
				UpcomingFixtures: []ExternalUpcomingFixture{
					{Code: 9001, EventID: 2, OppositionTeamID: 1, IsHome: false, KickoffAt: now.Add(48 * time.Hour)},
				},
			},
		},
	}
	repo := &stubFeatureRepo{}

	result, err := newCollectionFixture(feed, repo, now).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if result.State != CollectStateCollected {
		t.Fatalf("expected collected state, got=%s", result.State)
	}
	if result.EventID != 2 {
		t.Fatalf("expected event 2, got=%d", result.EventID)
	}
	if result.RowCount != 2 {
		t.Fatalf("expected 2 rows, got=%d", result.RowCount)
	}
	if len(repo.replaced) != 1 || len(repo.replaced[0]) != 2 {
		t.Fatalf("expected one replace with 2 rows, got=%+v", repo.replaced)
	}
	for _, row := range repo.replaced[0] {
		if row.OppositionStrength == 0 {
			t.Fatalf("expected opposition strength on row, got=%+v", row)
		}
	}
}

func TestCollectionService_Collect_SuppressedWhileInProgress(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		bootstrap: ExternalBootstrap{
			Events: []ExternalEvent{
				{ID: 1, DeadlineTime: now.Add(-24 * time.Hour), Finished: false},
				{ID: 2, DeadlineTime: now.Add(6 * 24 * time.Hour)},
			},
		},
	}
	repo := &stubFeatureRepo{}

	result, err := newCollectionFixture(feed, repo, now).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if result.State != CollectStateInProgress {
		t.Fatalf("expected in_progress state, got=%s", result.State)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("pending rows must stay untouched while a gameweek is unresolved")
	}
}

func TestCollectionService_Collect_SeasonOver(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		bootstrap: ExternalBootstrap{
			Events: []ExternalEvent{
				{ID: 37, DeadlineTime: now.Add(-14 * 24 * time.Hour), Finished: true},
				{ID: 38, DeadlineTime: now.Add(-7 * 24 * time.Hour), Finished: true},
			},
		},
	}
	repo := &stubFeatureRepo{}

	result, err := newCollectionFixture(feed, repo, now).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if result.State != CollectStateSeasonOver {
		t.Fatalf("expected season_over state, got=%s", result.State)
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("season over must not replace rows")
	}
}

func TestCollectionService_Collect_SkipsFailedPlayer(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		bootstrap: ExternalBootstrap{
			Events: []ExternalEvent{
				{ID: 2, DeadlineTime: now.Add(24 * time.Hour)},
			},
			Players: []ExternalPlayer{
				{ID: 100, TeamID: 1},
				{ID: 200, TeamID: 1},
			},
		},
		summaries: map[int64]ExternalPlayerSummary{
			100: {
				UpcomingFixtures: []ExternalUpcomingFixture{
					{Code: 1, EventID: 2, OppositionTeamID: 2},
				},
			},
		},
		summaryErrs: map[int64]error{
			200: fmt.Errorf("boom"),
		},
	}
	repo := &stubFeatureRepo{}

	result, err := newCollectionFixture(feed, repo, now).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected 1 skipped player, got=%d", result.Skipped)
	}
	if result.RowCount != 1 {
		t.Fatalf("expected 1 row, got=%d", result.RowCount)
	}
}

func TestCollectionService_Collect_AbortOnPlayerError(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		bootstrap: ExternalBootstrap{
			Events: []ExternalEvent{
				{ID: 2, DeadlineTime: now.Add(24 * time.Hour)},
			},
			Players: []ExternalPlayer{{ID: 100, TeamID: 1}},
		},
		summaryErrs: map[int64]error{
			100: fmt.Errorf("boom"),
		},
	}
	repo := &stubFeatureRepo{}

	svc := NewCollectionService(feed, repo, NewOppositionService(feed, 2, nil), CollectionConfig{
		MaxWorkers:         2,
		AbortOnPlayerError: true,
	}, nil)
	svc.now = func() time.Time { return now }

	if _, err := svc.Collect(context.Background()); err == nil {
		t.Fatalf("expected error when aborting on player failure")
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("aborted run must not replace rows")
	}
}

package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold, halfOpenMax int, openTimeout time.Duration, now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(threshold, openTimeout, halfOpenMax)
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	b := newTestBreaker(3, 1, 15*time.Second, &now)

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("closed breaker must allow, got=%v", err)
		}
		b.RecordFailure()
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("breaker must stay closed below threshold, state=%s", b.State())
	}

	b.RecordFailure()
	if b.State() != CircuitStateOpen {
		t.Fatalf("breaker must open at threshold, state=%s", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker must reject, got=%v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	b := newTestBreaker(1, 1, 15*time.Second, &now)

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected rejection while open, got=%v", err)
	}

	now = now.Add(16 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open breaker must admit a probe, got=%v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("probe limit must be enforced, got=%v", err)
	}

	b.RecordSuccess()
	if b.State() != CircuitStateClosed {
		t.Fatalf("successful probe must close the breaker, state=%s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker must allow, got=%v", err)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	b := newTestBreaker(1, 1, 15*time.Second, &now)

	b.RecordFailure()
	now = now.Add(16 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open breaker must admit a probe, got=%v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("failed probe must reopen the breaker, got=%v", err)
	}
}

func TestCircuitBreakerConfig_Normalize(t *testing.T) {
	t.Parallel()

	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	def := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold != def.FailureThreshold {
		t.Fatalf("expected default failure threshold %d, got=%d", def.FailureThreshold, cfg.FailureThreshold)
	}
	if cfg.OpenTimeout != def.OpenTimeout {
		t.Fatalf("expected default open timeout %v, got=%v", def.OpenTimeout, cfg.OpenTimeout)
	}
	if cfg.HalfOpenMaxReq != def.HalfOpenMaxReq {
		t.Fatalf("expected default half-open max %d, got=%d", def.HalfOpenMaxReq, cfg.HalfOpenMaxReq)
	}
}

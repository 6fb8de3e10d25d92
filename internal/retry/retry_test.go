package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type taggedErr struct {
	transient bool
}

func (e *taggedErr) Error() string   { return "tagged" }
func (e *taggedErr) Transient() bool { return e.transient }

type statusErr struct {
	code int
}

func (e *statusErr) Error() string      { return "status" }
func (e *statusErr) GetStatusCode() int { return e.code }

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesTransient(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		if calls < 3 {
			return &taggedErr{transient: true}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_PermanentEscapesImmediately(t *testing.T) {
	calls := 0
	permanent := &taggedErr{transient: false}
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected the permanent error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("permanent error must not be retried, got %d calls", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func() error {
		calls++
		return &taggedErr{transient: true}
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != DefaultConfig().MaxAttempts {
		t.Errorf("expected %d calls, got %d", DefaultConfig().MaxAttempts, calls)
	}
}

func TestDo_ContextCancelBetweenAttempts(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialBackoff = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func() error {
		calls++
		return &taggedErr{transient: true}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("cancel during backoff should stop further attempts, got %d calls", calls)
	}
}

func TestShouldRetry_StatusCodes(t *testing.T) {
	cfg := DefaultConfig()
	if !shouldRetry(&statusErr{code: 503}, cfg) {
		t.Error("503 should be retryable")
	}
	if shouldRetry(&statusErr{code: 404}, cfg) {
		t.Error("404 should not be retryable")
	}
}

func TestBackoff_GrowsAndCaps(t *testing.T) {
	cfg := Config{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     400 * time.Millisecond,
		Multiplier:     2.0,
	}
	if got := Backoff(0, cfg); got != 100*time.Millisecond {
		t.Errorf("attempt 0: got %v", got)
	}
	if got := Backoff(1, cfg); got != 200*time.Millisecond {
		t.Errorf("attempt 1: got %v", got)
	}
	if got := Backoff(5, cfg); got != 400*time.Millisecond {
		t.Errorf("attempt 5 should cap at max: got %v", got)
	}
}

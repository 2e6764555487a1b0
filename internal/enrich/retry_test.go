package enrich

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastRetry keeps backoff sleeps negligible in tests.
func fastRetry(attempts int) RetryOptions {
	return RetryOptions{
		MaxAttempts:    attempts,
		BackoffInitial: time.Millisecond,
		BackoffMax:     2 * time.Millisecond,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		if calls < 3 {
			return &TransientError{Err: errors.New("http 503")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	sentinel := errors.New("still down")
	err := Do(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		return &TransientError{Err: sentinel}
	})
	if calls != 3 {
		t.Fatalf("MaxAttempts=3 must mean exactly 3 calls, got %d", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected last attempt's error, got %v", err)
	}
}

func TestDo_TerminalErrorStopsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	terminal := errors.New("decode failure")
	err := Do(context.Background(), fastRetry(5), func(context.Context) error {
		calls++
		return terminal
	})
	if calls != 1 {
		t.Fatalf("terminal error must not be retried, got %d calls", calls)
	}
	if !errors.Is(err, terminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
}

func TestDo_NotFoundIsTerminal(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), fastRetry(5), func(context.Context) error {
		calls++
		return &NotFoundError{Key: "id:abc"}
	})
	if calls != 1 {
		t.Fatalf("not-found must not be retried, got %d calls", calls)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDo_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastRetry(3), func(context.Context) error {
		calls++
		return nil
	})
	if calls != 0 {
		t.Fatalf("cancelled context must not invoke fn, got %d calls", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDo_CancellationDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, RetryOptions{MaxAttempts: 3, BackoffInitial: time.Minute}, func(context.Context) error {
		calls++
		cancel()
		return &TransientError{Err: errors.New("http 500")}
	})
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	if IsTransient(nil) {
		t.Fatal("nil is not transient")
	}
	if !IsTransient(&TransientError{Err: errors.New("x")}) {
		t.Fatal("TransientError must be transient")
	}
	if !IsTransient(context.DeadlineExceeded) {
		t.Fatal("deadline exceeded must be transient")
	}
	if IsTransient(errors.New("boom")) {
		t.Fatal("plain errors are terminal")
	}
}

func TestBackoffSleep_DoublesAndCaps(t *testing.T) {
	t.Parallel()

	initial := 100 * time.Millisecond
	max := 500 * time.Millisecond
	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		500 * time.Millisecond,
		500 * time.Millisecond,
	}
	for attempt, w := range want {
		got := backoffSleep(initial, max, 0, attempt)
		if got != w {
			t.Fatalf("attempt %d: got %v, want %v", attempt, got, w)
		}
	}
}

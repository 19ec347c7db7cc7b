package pipeline

import (
	"context"
	"testing"
	"time"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	ok := p.Do(context.Background(), func(attempt int) bool {
		calls++
		return true
	})
	if !ok || calls != 1 {
		t.Fatalf("expected one successful call, got ok=%v calls=%d", ok, calls)
	}
}

func TestRetryStopsAfterMaxAttempts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond}

	calls := 0
	ok := p.Do(context.Background(), func(attempt int) bool {
		calls++
		if attempt != calls {
			t.Fatalf("expected attempt %d, got %d", calls, attempt)
		}
		return false
	})
	if ok || calls != 2 {
		t.Fatalf("expected two failed calls, got ok=%v calls=%d", ok, calls)
	}
}

func TestRetrySecondAttemptSucceeds(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond}

	calls := 0
	ok := p.Do(context.Background(), func(attempt int) bool {
		calls++
		return attempt == 2
	})
	if !ok || calls != 2 {
		t.Fatalf("expected success on second call, got ok=%v calls=%d", ok, calls)
	}
}

func TestRetryHonorsCancelledContext(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, Backoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	ok := p.Do(ctx, func(attempt int) bool {
		calls++
		return false
	})
	if ok || calls != 1 {
		t.Fatalf("expected one call before cancellation stops the loop, got ok=%v calls=%d", ok, calls)
	}
}

func TestRetryZeroAttemptsStillRunsOnce(t *testing.T) {
	p := RetryPolicy{}

	calls := 0
	p.Do(context.Background(), func(attempt int) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

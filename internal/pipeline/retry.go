package pipeline

import (
	"context"
	"time"
)

// RetryPolicy is a bounded retry with a fixed pause between attempts.
// The generator and the evaluator share one policy instance.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do calls fn up to MaxAttempts times, stopping early when fn reports
// success or the context is done. fn receives the 1-based attempt number.
// Returns whether any attempt succeeded.
func (p RetryPolicy) Do(ctx context.Context, fn func(attempt int) bool) bool {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		if fn(attempt) {
			return true
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(p.Backoff):
		}
	}
	return false
}

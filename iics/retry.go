package iics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"
)

// Backoff configures the retry policy for idempotent API reads. Mutating
// calls (job trigger, pull, rollback) are never retried.
type Backoff struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultBackoff matches the pipeline's historical policy: a couple of
// seconds between attempts, doubling, capped at ten seconds.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 4,
		BaseDelay:   2 * time.Second,
		MaxDelay:    10 * time.Second,
		Multiplier:  2,
	}
}

// delay returns the wait before the attempt following the given one.
func (b Backoff) delay(attempt int) time.Duration {
	d := time.Duration(float64(b.BaseDelay) * math.Pow(b.Multiplier, float64(attempt-1)))
	if d > b.MaxDelay {
		d = b.MaxDelay
	}
	return d
}

// withRetry runs fn up to MaxAttempts times, backing off between attempts.
// Only transient failures are retried; a definitive error (4xx) returns
// immediately.
func (c *Client) withRetry(ctx context.Context, op string, fn func() error) error {
	b := c.backoff
	var lastErr error

	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return err
		}
		lastErr = err

		if attempt == b.MaxAttempts {
			break
		}

		delay := b.delay(attempt)
		c.log.WithFields(map[string]interface{}{
			"operation": op,
			"attempt":   attempt,
			"delay":     delay.String(),
		}).Warnf("transient failure, retrying: %v", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled while retrying %s: %w", op, ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("max attempts (%d) exceeded for %s: %w", b.MaxAttempts, op, lastErr)
}

// statusError is a non-2xx API response.
type statusError struct {
	Status  int
	URL     string
	Snippet string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.Status, e.URL, e.Snippet)
}

// transient reports whether an error is worth retrying: network-level
// failures and 5xx responses. 4xx responses are definitive.
func transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

// Package retry runs payments API calls again after transient failures.
//
// The paylink client never retries on its own. Callers that want retries wrap
// a call with Do and pass ShouldRetry (or their own predicate).
package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	paylink "github.com/alnah/go-paylink"
)

// Config holds retry parameters for exponential backoff.
//
// Invalid values are normalized:
//   - MaxRetries < 0 becomes 0 (single attempt)
//   - BaseDelay <= 0 becomes 1ms
//   - MaxDelay <= 0 becomes BaseDelay
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

func (c *Config) normalize() {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = c.BaseDelay
	}
}

// hinter is implemented by errors that carry a server retry hint,
// such as *paylink.Error for rate limits.
type hinter interface {
	RetryAfter() (time.Duration, bool)
}

// Do calls fn until it succeeds, shouldRetry rejects the error, or
// cfg.MaxRetries retries have been spent. A server Retry-After hint replaces
// the backoff delay for the next wait.
//
// The last error stays reachable through errors.Is and errors.As.
func Do[T any](
	ctx context.Context,
	cfg Config,
	fn func(context.Context) (T, error),
	shouldRetry func(error) bool,
) (T, error) {
	cfg.normalize()

	var zero T
	backoff := cfg.BaseDelay

	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !shouldRetry(err) {
			return zero, err
		}
		if attempt == cfg.MaxRetries {
			if cfg.MaxRetries == 0 {
				return zero, err
			}
			return zero, fmt.Errorf("giving up after %d retries: %w", cfg.MaxRetries, err)
		}

		wait := backoff
		var h hinter
		if errors.As(err, &h) {
			if d, ok := h.RetryAfter(); ok {
				wait = d
			}
		}
		backoff = min(backoff*2, cfg.MaxDelay)

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// ShouldRetry reports whether err is a transient payments API failure:
// a rate limit, a server error (5xx), or a request that got no response.
// Caller cancellation is never retried.
func ShouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var pe *paylink.Error
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Kind() {
	case paylink.KindRateLimit:
		return true
	case paylink.KindAPI:
		return pe.StatusCode() == paylink.StatusNoResponse ||
			pe.StatusCode() >= http.StatusInternalServerError
	default:
		return false
	}
}

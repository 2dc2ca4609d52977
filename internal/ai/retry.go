package ai

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig tunes the retryable call wrapper.
type RetryConfig struct {
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

// DefaultRetryConfig returns the wrapper defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       10 * time.Second,
		RequestTimeout: 60 * time.Second,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	d := DefaultRetryConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	return c
}

// Operation performs one external AI call.
type Operation func(ctx context.Context) (string, error)

// after is swapped out in tests to avoid real sleeps.
var after = time.After

// CallWithRetry executes op under a timeout guard and retries transient
// upstream failures with exponential backoff. Quota errors honour a
// server-specified retry-after when present and otherwise back off from a
// higher floor. Fatal errors propagate immediately. This is pure control
// flow: the only synthesized error category is the timeout.
func CallWithRetry(ctx context.Context, cfg RetryConfig, op Operation) (string, error) {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		out, err := runWithTimeout(ctx, cfg.RequestTimeout, op)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !Retryable(err) {
			return "", err
		}
		retriesTotal.Inc()
		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-after(backoffDelay(err, attempt, cfg)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// runWithTimeout races op against the request timeout. On timeout the call is
// abandoned, not resumed; the goroutine drains into a buffered channel.
func runWithTimeout(ctx context.Context, timeout time.Duration, op Operation) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := op(cctx)
		ch <- result{out, err}
	}()

	select {
	case r := <-ch:
		return r.out, r.err
	case <-cctx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrTimeout
	}
}

// backoffDelay computes the wait before the next attempt.
func backoffDelay(err error, attempt int, cfg RetryConfig) time.Duration {
	if IsQuota(err) {
		if hint := retryAfterHint(err); hint > 0 {
			if hint > cfg.MaxDelay {
				return cfg.MaxDelay
			}
			return hint
		}
		floor := 2 * cfg.BaseDelay
		if floor < 5*time.Second {
			floor = 5 * time.Second
		}
		d := floor << uint(attempt)
		d += time.Duration(rand.Int63n(int64(2 * time.Second)))
		if d > cfg.MaxDelay {
			d = cfg.MaxDelay
		}
		return d
	}

	d := cfg.BaseDelay << uint(attempt)
	if d > cfg.MaxDelay {
		d = cfg.MaxDelay
	}
	return d + time.Duration(rand.Int63n(int64(time.Second)))
}

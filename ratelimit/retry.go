// Package ratelimit decides when and how long to wait before retrying a
// rate-limited request. Only 429 responses are retried; every other failure
// propagates immediately.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 60 * time.Second
)

type RetryPolicy struct {
	MaxAttempts  int
	DefaultDelay time.Duration
	Now          func() time.Time
	// Sleep is swappable in tests; nil means a context-aware wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:  DefaultMaxAttempts,
		DefaultDelay: DefaultRetryDelay,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

func (p *RetryPolicy) maxAttempts() int {
	if p == nil || p.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p *RetryPolicy) defaultDelay() time.Duration {
	if p == nil || p.DefaultDelay <= 0 {
		return DefaultRetryDelay
	}
	return p.DefaultDelay
}

func (p *RetryPolicy) now() time.Time {
	if p != nil && p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// ShouldRetry reports whether a response with the given status may be
// retried after attempt attempts have already been made.
func (p *RetryPolicy) ShouldRetry(statusCode int, attempt int) bool {
	if statusCode != http.StatusTooManyRequests {
		return false
	}
	return attempt < p.maxAttempts()
}

// Delay returns the backoff before the next attempt, honoring the
// Retry-After header (integer seconds or an HTTP date) when present and
// falling back to the policy default otherwise.
func (p *RetryPolicy) Delay(headers http.Header) time.Duration {
	if delay, ok := parseRetryAfter(headers.Get("Retry-After"), p.now()); ok {
		return delay
	}
	return p.defaultDelay()
}

// Wait blocks for the given delay or until the context is done, whichever
// comes first.
func (p *RetryPolicy) Wait(ctx context.Context, delay time.Duration) error {
	if p != nil && p.Sleep != nil {
		return p.Sleep(ctx, delay)
	}
	if delay <= 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(raw string, now time.Time) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if retryAt, err := httpDate(raw); err == nil {
		if retryAt.After(now) {
			return retryAt.Sub(now), true
		}
	}
	return 0, false
}

func httpDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("ratelimit: empty date")
	}
	if parsed, err := time.Parse(time.RFC1123, value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse(time.RFC1123Z, value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("ratelimit: invalid http date")
}

package ratelimit

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicy_ShouldRetryOnlyOn429(t *testing.T) {
	policy := NewRetryPolicy()
	if policy.ShouldRetry(http.StatusInternalServerError, 1) {
		t.Fatal("500 must not be retried")
	}
	if policy.ShouldRetry(http.StatusBadRequest, 1) {
		t.Fatal("400 must not be retried")
	}
	if !policy.ShouldRetry(http.StatusTooManyRequests, 1) {
		t.Fatal("first 429 should be retried")
	}
	if !policy.ShouldRetry(http.StatusTooManyRequests, 2) {
		t.Fatal("second 429 should be retried")
	}
	if policy.ShouldRetry(http.StatusTooManyRequests, 3) {
		t.Fatal("third attempt exhausts the budget")
	}
}

func TestRetryPolicy_DelayFromRetryAfterSeconds(t *testing.T) {
	policy := NewRetryPolicy()
	headers := http.Header{}
	headers.Set("Retry-After", "7")
	if got := policy.Delay(headers); got != 7*time.Second {
		t.Fatalf("expected 7s, got %v", got)
	}
}

func TestRetryPolicy_DelayFromRetryAfterHTTPDate(t *testing.T) {
	now := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	policy := NewRetryPolicy()
	policy.Now = func() time.Time { return now }

	headers := http.Header{}
	headers.Set("Retry-After", now.Add(90*time.Second).Format(time.RFC1123))
	if got := policy.Delay(headers); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

func TestRetryPolicy_DelayFallsBackToDefault(t *testing.T) {
	policy := NewRetryPolicy()
	if got := policy.Delay(http.Header{}); got != DefaultRetryDelay {
		t.Fatalf("expected default delay, got %v", got)
	}

	headers := http.Header{}
	headers.Set("Retry-After", "not-a-delay")
	if got := policy.Delay(headers); got != DefaultRetryDelay {
		t.Fatalf("expected default delay for garbage header, got %v", got)
	}

	headers.Set("Retry-After", "-3")
	if got := policy.Delay(headers); got != DefaultRetryDelay {
		t.Fatalf("expected default delay for negative seconds, got %v", got)
	}
}

func TestRetryPolicy_WaitHonorsContext(t *testing.T) {
	policy := NewRetryPolicy()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := policy.Wait(ctx, time.Minute); err == nil {
		t.Fatal("expected a context error from a cancelled wait")
	}
	if err := policy.Wait(context.Background(), 0); err != nil {
		t.Fatalf("zero delay should return immediately: %v", err)
	}
}

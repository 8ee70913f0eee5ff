package omdb

import "testing"

func TestRateLimitHandling(t *testing.T) {
	client := NewClient("k", WithRateLimiter(nil))

	// Initially requests should be allowed
	if !client.RequestsAllowed() {
		t.Error("Expected requests to be allowed initially")
	}

	client.markRateLimitReached()
	if client.RequestsAllowed() {
		t.Error("Expected requests to be blocked after rate limit reached")
	}

	// Calling mark again should be a no-op (idempotent)
	client.markRateLimitReached()
	if client.RequestsAllowed() {
		t.Error("Expected requests to still be blocked")
	}

	client.ResetRateLimit()
	if !client.RequestsAllowed() {
		t.Error("Expected requests to be allowed after reset")
	}
}

package omdb

import "log/slog"

// markRateLimitReached records that OMDb refused further requests.
// It logs a warning on the first call and subsequent calls are no-ops.
func (c *Client) markRateLimitReached() {
	if c.limitReached.CompareAndSwap(false, true) {
		slog.Warn("OMDb API request limit reached; skipping further OMDb requests for this run")
	}
}

// RequestsAllowed returns true until OMDb has reported its request limit.
func (c *Client) RequestsAllowed() bool {
	return !c.limitReached.Load()
}

// ResetRateLimit allows requests again after the limit was reported.
func (c *Client) ResetRateLimit() {
	c.limitReached.Store(false)
}

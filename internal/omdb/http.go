package omdb

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lepinkainen/marquee/internal/errors"
)

const requestLimitMessage = "Request limit reached!"

// getJSON performs one GET against the API and decodes the envelope into target.
// Network failures, non-2xx statuses and undecodable bodies all surface as
// *errors.TransportError; a provider request-limit refusal surfaces as
// *errors.RateLimitError.
func (c *Client) getJSON(ctx context.Context, op string, params url.Values, target any) error {
	if !c.RequestsAllowed() {
		return errors.NewRateLimitError("OMDb API request limit reached")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return errors.NewTransportError(op, err)
	}

	params.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var envelope struct {
			Response string `json:"Response"`
			Error    string `json:"Error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			if envelope.Error == requestLimitMessage {
				c.markRateLimitReached()
				return errors.NewRateLimitError("OMDb API request limit reached")
			}
			if resp.StatusCode == http.StatusUnauthorized {
				slog.Warn("OMDb rejected the request; check omdb.api_key", "error", envelope.Error)
			}
		}
		return errors.NewStatusError(op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewTransportError(op, err)
	}
	return nil
}

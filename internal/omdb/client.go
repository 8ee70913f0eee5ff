// Package omdb provides a client for the OMDb movie metadata API.
package omdb

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lepinkainen/marquee/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://www.omdbapi.com/"
	defaultTerm          = "movie"
	defaultRatePerSecond = 1 // free tier allows 1000 requests/day
	defaultTimeout       = 15 * time.Second
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the current session token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

// Token calls f.
func (f TokenFunc) Token() string { return f() }

// Client is an OMDb API client.
type Client struct {
	apiKey       string
	baseURL      string
	defaultTerm  string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	tokens       TokenSource
	limitReached atomic.Bool
}

// NewClient creates a new OMDb API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(defaultBaseURL, "/"),
		defaultTerm: defaultTerm,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("OMDb", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OMDb API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter replaces the request limiter. A nil limiter disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithTokenSource attaches a bearer token to every request when the source has one.
func WithTokenSource(src TokenSource) Option {
	return func(client *Client) {
		client.tokens = src
	}
}

// WithDefaultTerm sets the term searched when the caller passes an empty one.
func WithDefaultTerm(term string) Option {
	return func(client *Client) {
		if term != "" {
			client.defaultTerm = term
		}
	}
}

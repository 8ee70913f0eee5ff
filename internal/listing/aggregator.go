// Package listing owns the search paging state: which term and filters are
// active, how many pages have been loaded and what to do when a page arrives.
package listing

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/omdb"
)

// PageSize is the number of results the provider returns per search page.
const PageSize = 10

// DefaultTerm is the search term a new Aggregator starts with.
const DefaultTerm = "Marvel"

// Searcher is the part of the OMDb client the aggregator needs.
type Searcher interface {
	Search(ctx context.Context, term string, page int, filters *omdb.FilterOptions) (*omdb.SearchResponse, error)
}

// Status is the aggregator's state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a copy of the aggregator's search state.
type State struct {
	Term         string
	Filters      omdb.FilterOptions
	Page         int
	Results      []omdb.MovieSummary
	TotalResults int
	Status       Status
	// LoadingPage is the page being fetched while Status is StatusLoading.
	LoadingPage int
	// Message is the user-facing error text while Status is StatusError.
	Message string
}

// Request describes one search fetch issued by a Begin method.
// Pass it to Complete together with the fetch outcome.
type Request struct {
	Term       string
	Filters    omdb.FilterOptions
	Page       int
	Generation uint64
	// Replace is set for page-1 resets and numbered-page jumps; otherwise the page is appended.
	Replace bool
}

// Aggregator drives a Searcher and merges the pages it returns.
// It is safe for concurrent use.
type Aggregator struct {
	searcher Searcher

	mu         sync.Mutex
	state      State
	generation uint64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithInitialTerm sets the term used before the first SetTerm.
func WithInitialTerm(term string) Option {
	return func(a *Aggregator) {
		if strings.TrimSpace(term) != "" {
			a.state.Term = term
		}
	}
}

// WithInitialFilters sets the filters used before the first ApplyFilters.
func WithInitialFilters(filters omdb.FilterOptions) Option {
	return func(a *Aggregator) {
		a.state.Filters = normalizeFilters(filters)
	}
}

// NewAggregator creates an idle aggregator with no results.
func NewAggregator(searcher Searcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		searcher: searcher,
		state: State{
			Term:    DefaultTerm,
			Filters: omdb.DefaultFilters(),
			Page:    1,
			Status:  StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TotalPages returns ceil(total / PageSize), 0 for a non-positive total.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// Snapshot returns a copy of the current state.
func (a *Aggregator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.state
	s.Results = append([]omdb.MovieSummary(nil), a.state.Results...)
	return s
}

// TotalPages returns the page count for the current total.
func (a *Aggregator) TotalPages() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return TotalPages(a.state.TotalResults)
}

// CanLoadMore reports whether LoadMore would issue a request.
func (a *Aggregator) CanLoadMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canLoadMoreLocked()
}

// After GoToPage the results hold fewer pages than Page, so the last page is
// checked directly as well as the result count.
func (a *Aggregator) canLoadMoreLocked() bool {
	return a.state.Status != StatusLoading &&
		len(a.state.Results) < a.state.TotalResults &&
		a.state.Page < TotalPages(a.state.TotalResults)
}

// BeginSetTerm switches to term and resets paging.
func (a *Aggregator) BeginSetTerm(term string) Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Term = strings.TrimSpace(term)
	return a.resetLocked()
}

// BeginApplyFilters switches to filters and resets paging.
// Invalid filters are rejected before any state changes.
func (a *Aggregator) BeginApplyFilters(filters omdb.FilterOptions) (Request, error) {
	if err := filters.Validate(); err != nil {
		return Request{}, errors.NewValidationError(map[string]string{"filters": err.Error()})
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Filters = normalizeFilters(filters)
	return a.resetLocked(), nil
}

// BeginRefresh resets paging and refetches page 1 with the current term and filters.
func (a *Aggregator) BeginRefresh() Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resetLocked()
}

// BeginRetry re-issues a page-1 reset. It only applies in the error state.
func (a *Aggregator) BeginRetry() (Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Status != StatusError {
		return Request{}, false
	}
	return a.resetLocked(), true
}

// BeginLoadMore advances to the next page. It returns false without changing
// anything when a fetch is in flight or every result is already loaded.
func (a *Aggregator) BeginLoadMore() (Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.canLoadMoreLocked() {
		return Request{}, false
	}
	a.state.Page++
	a.state.Status = StatusLoading
	a.state.LoadingPage = a.state.Page
	a.state.Message = ""
	return a.requestLocked(false), true
}

// BeginGoToPage fetches page n and replaces the results with it.
// Out-of-range pages and the page already shown are ignored.
func (a *Aggregator) BeginGoToPage(n int) (Request, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n < 1 || n > TotalPages(a.state.TotalResults) || n == a.state.Page {
		return Request{}, false
	}
	a.generation++
	a.state.Page = n
	a.state.Status = StatusLoading
	a.state.LoadingPage = n
	a.state.Message = ""
	return a.requestLocked(true), true
}

// resetLocked clears results, returns to page 1 and starts a new generation
// so responses to earlier requests are dropped.
func (a *Aggregator) resetLocked() Request {
	a.generation++
	a.state.Page = 1
	a.state.Results = nil
	a.state.TotalResults = 0
	a.state.Status = StatusLoading
	a.state.LoadingPage = 1
	a.state.Message = ""
	return a.requestLocked(true)
}

func (a *Aggregator) requestLocked(replace bool) Request {
	return Request{
		Term:       a.state.Term,
		Filters:    a.state.Filters,
		Page:       a.state.Page,
		Generation: a.generation,
		Replace:    replace,
	}
}

// Complete applies the outcome of req's fetch. It returns nil when the page
// was merged or the response was stale, a *errors.NotFoundError when the
// provider answered Response "False", and err itself for transport failures.
func (a *Aggregator) Complete(req Request, resp *omdb.SearchResponse, err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if req.Generation != a.generation || a.state.Status != StatusLoading || req.Page != a.state.LoadingPage {
		slog.Debug("Discarding stale search response", "term", req.Term, "page", req.Page,
			"generation", req.Generation, "current", a.generation)
		return nil
	}

	if err != nil {
		slog.Error("Search request failed", "term", req.Term, "page", req.Page, "error", err)
		a.failLocked(errors.UserMessage(err))
		return err
	}

	if !resp.OK() {
		msg := ""
		if resp != nil {
			msg = resp.Error
		}
		if msg == "" {
			msg = errors.NoResultsMessage
		}
		a.failLocked(msg)
		return errors.NewNotFoundError(msg)
	}

	total := resp.Total()
	if req.Replace {
		a.state.Results = append([]omdb.MovieSummary(nil), resp.Search...)
	} else {
		a.state.Results = append(a.state.Results, resp.Search...)
	}
	if total > 0 && len(a.state.Results) > total {
		a.state.Results = a.state.Results[:total]
	}
	a.state.TotalResults = total
	a.state.Status = StatusIdle
	a.state.LoadingPage = 0
	a.state.Message = ""
	return nil
}

func (a *Aggregator) failLocked(msg string) {
	a.state.Results = nil
	a.state.TotalResults = 0
	a.state.Status = StatusError
	a.state.LoadingPage = 0
	a.state.Message = msg
}

// Fetch runs req against the searcher and applies the result.
func (a *Aggregator) Fetch(ctx context.Context, req Request) error {
	filters := req.Filters
	resp, err := a.searcher.Search(ctx, req.Term, req.Page, &filters)
	return a.Complete(req, resp, err)
}

// SetTerm resets to term and fetches page 1.
func (a *Aggregator) SetTerm(ctx context.Context, term string) error {
	return a.Fetch(ctx, a.BeginSetTerm(term))
}

// ApplyFilters resets to filters and fetches page 1.
func (a *Aggregator) ApplyFilters(ctx context.Context, filters omdb.FilterOptions) error {
	req, err := a.BeginApplyFilters(filters)
	if err != nil {
		return err
	}
	return a.Fetch(ctx, req)
}

// ResetFilters applies {All, All}.
func (a *Aggregator) ResetFilters(ctx context.Context) error {
	return a.ApplyFilters(ctx, omdb.DefaultFilters())
}

// Refresh refetches page 1 with the current term and filters.
func (a *Aggregator) Refresh(ctx context.Context) error {
	return a.Fetch(ctx, a.BeginRefresh())
}

// Retry repeats the failed search as a page-1 reset. It reports false when
// the aggregator is not in the error state.
func (a *Aggregator) Retry(ctx context.Context) (bool, error) {
	req, ok := a.BeginRetry()
	if !ok {
		return false, nil
	}
	return true, a.Fetch(ctx, req)
}

// LoadMore fetches the next page and appends it. It reports false, without
// issuing a request, when nothing is left to load.
func (a *Aggregator) LoadMore(ctx context.Context) (bool, error) {
	req, ok := a.BeginLoadMore()
	if !ok {
		return false, nil
	}
	return true, a.Fetch(ctx, req)
}

// GoToPage fetches page n and replaces the results with it.
func (a *Aggregator) GoToPage(ctx context.Context, n int) (bool, error) {
	req, ok := a.BeginGoToPage(n)
	if !ok {
		return false, nil
	}
	return true, a.Fetch(ctx, req)
}

func normalizeFilters(f omdb.FilterOptions) omdb.FilterOptions {
	if f.Type == "" {
		f.Type = omdb.FilterAll
	}
	if f.Year == "" {
		f.Year = omdb.FilterAll
	}
	return f
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/favorites"
	"github.com/lepinkainen/marquee/internal/listing"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/session"
	"github.com/lepinkainen/marquee/internal/storage"
)

type fakeMovies struct {
	mu        sync.Mutex
	total     int
	searchErr error
	searches  []omdb.FilterOptions
	terms     []string
}

func (f *fakeMovies) Search(_ context.Context, term string, page int, filters *omdb.FilterOptions) (*omdb.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terms = append(f.terms, term)
	if filters != nil {
		f.searches = append(f.searches, *filters)
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	resp := &omdb.SearchResponse{Response: "True", TotalResults: strconv.Itoa(f.total)}
	for i := (page - 1) * 10; i < page*10 && i < f.total; i++ {
		resp.Search = append(resp.Search, omdb.MovieSummary{
			ID: fmt.Sprintf("tt%07d", i+1), Title: fmt.Sprintf("%s %d", term, i+1), Year: "2012", Type: "movie", Poster: "N/A",
		})
	}
	return resp, nil
}

func (f *fakeMovies) GetByID(_ context.Context, id string) (*omdb.MovieDetail, error) {
	if id == "tt-missing" {
		return &omdb.MovieDetail{Response: "False", Error: "Incorrect IMDb ID."}, nil
	}
	return &omdb.MovieDetail{
		ID: id, Title: "The Avengers", Year: "2012", Type: "movie", Rated: "PG-13", Runtime: "143 min",
		Genre: "Action, Sci-Fi", Director: "Joss Whedon", Plot: "Earth's mightiest heroes must come together.",
		ImdbRating: "8.0", ImdbVotes: "1,502,321",
		Ratings: []omdb.Rating{
			{Source: "Internet Movie Database", Value: "8.0/10"},
			{Source: "Rotten Tomatoes", Value: "91%"},
			{Source: "Metacritic", Value: "69/100"},
		},
		Response: "True",
	}, nil
}

func newTestBrowser(t *testing.T, movies *fakeMovies) *browserModel {
	t.Helper()
	deps := BrowserDeps{
		Movies:    movies,
		Listing:   listing.NewAggregator(movies),
		Favorites: favorites.NewStore(storage.NewMemoryStore()),
		User:      &session.User{Name: "Test User"},
	}
	m := newBrowserModel(context.Background(), deps)
	run(t, m, m.search(deps.Listing.BeginRefresh()))
	return m
}

// run executes cmd and feeds any fetch result back into the model.
func run(t *testing.T, m *browserModel, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case searchResultMsg, detailResultMsg:
		_, next := m.Update(msg)
		run(t, m, next)
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c)
		}
	}
}

func press(t *testing.T, m *browserModel, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	run(t, m, cmd)
}

func TestBrowserInitialLoad(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 25})

	assert.Len(t, m.results.Items(), 10)
	view := m.View()
	assert.Contains(t, view, "Showing 10 of 25 results")
	assert.Contains(t, view, "page 1/3")
	assert.Contains(t, view, "signed in as Test User")
}

func TestBrowserLoadMore(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 25})

	press(t, m, "n")
	assert.Len(t, m.results.Items(), 20)
	press(t, m, "n")
	assert.Len(t, m.results.Items(), 25)
	assert.NotContains(t, m.View(), "n: load more")
}

func TestBrowserTypeFilterCycles(t *testing.T) {
	movies := &fakeMovies{total: 5}
	m := newTestBrowser(t, movies)

	press(t, m, "t")
	assert.Equal(t, "movie", m.deps.Listing.Snapshot().Filters.Type)
	assert.Equal(t, omdb.FilterOptions{Type: "movie", Year: "All"}, movies.searches[len(movies.searches)-1])

	press(t, m, "t")
	press(t, m, "t")
	press(t, m, "t")
	assert.Equal(t, "All", m.deps.Listing.Snapshot().Filters.Type)
}

func TestBrowserYearFilter(t *testing.T) {
	movies := &fakeMovies{total: 5}
	m := newTestBrowser(t, movies)

	press(t, m, "y")
	require.Equal(t, inputYear, m.inputMode)
	press(t, m, "2020")
	press(t, m, "enter")

	assert.Equal(t, omdb.FilterOptions{Type: "All", Year: "2020"}, m.deps.Listing.Snapshot().Filters)
	assert.Contains(t, m.View(), "year: 2020")

	press(t, m, "y")
	m.input.SetValue("20")
	press(t, m, "enter")
	assert.Contains(t, m.notice, "invalid input")
	assert.Equal(t, "2020", m.deps.Listing.Snapshot().Filters.Year)

	press(t, m, "c")
	assert.Equal(t, omdb.DefaultFilters(), m.deps.Listing.Snapshot().Filters)
}

func TestBrowserSearchInput(t *testing.T) {
	movies := &fakeMovies{total: 3}
	m := newTestBrowser(t, movies)

	press(t, m, "/")
	require.Equal(t, inputSearch, m.inputMode)
	assert.Equal(t, "Marvel", m.input.Value())

	m.input.SetValue("")
	press(t, m, "Alien")
	press(t, m, "enter")

	assert.Equal(t, inputNone, m.inputMode)
	assert.Equal(t, "Alien", movies.terms[len(movies.terms)-1])
	assert.Equal(t, "Alien 1", m.results.Items()[0].(movieItem).MovieSummary.Title)
}

func TestBrowserSearchClearsResultsUntilResponse(t *testing.T) {
	movies := &fakeMovies{total: 3}
	m := newTestBrowser(t, movies)
	require.Len(t, m.results.Items(), 3)

	press(t, m, "/")
	m.input.SetValue("Alien")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.results.Items())
	assert.Equal(t, listing.StatusLoading, m.deps.Listing.Snapshot().Status)

	run(t, m, cmd)
	assert.Equal(t, "Alien 1", m.results.Items()[0].(movieItem).MovieSummary.Title)
}

func TestBrowserToggleFavorite(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 3})

	press(t, m, "f")
	assert.True(t, m.deps.Favorites.IsFavorite("tt0000001"))
	assert.Contains(t, m.View(), "Favorites (1)")
	assert.True(t, m.results.Items()[0].(movieItem).favorite)

	press(t, m, "tab")
	assert.Equal(t, screenFavorites, m.screen)
	assert.Len(t, m.favorites.Items(), 1)

	press(t, m, "d")
	assert.False(t, m.deps.Favorites.IsFavorite("tt0000001"))
	assert.Empty(t, m.favorites.Items())
}

func TestBrowserDetail(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 3})

	press(t, m, "enter")
	require.Equal(t, screenDetail, m.screen)
	require.NotNil(t, m.detail)

	view := m.View()
	assert.Contains(t, view, "The Avengers (2012)")
	assert.Contains(t, view, "Ratings")
	assert.Contains(t, view, "IMDb")
	assert.Contains(t, view, "Rotten Tomatoes")
	assert.Contains(t, view, "1.5M")
	assert.Contains(t, view, "Sci-Fi")

	press(t, m, "f")
	assert.True(t, m.deps.Favorites.IsFavorite("tt0000001"))

	press(t, m, "esc")
	assert.Equal(t, screenResults, m.screen)
}

func TestBrowserDetailNotFound(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 3})

	run(t, m, m.openDetail(omdb.MovieSummary{ID: "tt-missing"}))
	assert.Nil(t, m.detail)
	assert.Contains(t, m.View(), "Incorrect IMDb ID.")
}

func TestBrowserStaleDetailIgnored(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 3})

	m.openDetail(omdb.MovieSummary{ID: "tt0000002"})
	m.Update(detailResultMsg{id: "tt0000001", detail: &omdb.MovieDetail{Title: "Old", Response: "True"}})
	assert.Nil(t, m.detail)
	assert.True(t, m.detailLoading)
}

func TestBrowserErrorAndRetry(t *testing.T) {
	movies := &fakeMovies{total: 12, searchErr: errors.NewTransportError("omdb search", assert.AnError)}
	m := newTestBrowser(t, movies)

	view := m.View()
	assert.Contains(t, view, "An error occurred while fetching movies")
	assert.Contains(t, view, "Press r to retry")
	assert.NotContains(t, view, assert.AnError.Error())

	movies.searchErr = nil
	press(t, m, "r")
	assert.Equal(t, listing.StatusIdle, m.deps.Listing.Snapshot().Status)
	assert.Len(t, m.results.Items(), 10)
}

func TestBrowserQuit(t *testing.T) {
	m := newTestBrowser(t, &fakeMovies{total: 1})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPageSummary(t *testing.T) {
	assert.Equal(t, "No results", pageSummary(listing.State{}))
	assert.Equal(t, "Showing 25 of 25 results | page 3/3",
		pageSummary(listing.State{Results: make([]omdb.MovieSummary, 25), TotalResults: 25, Page: 3}))
}

func TestNextType(t *testing.T) {
	assert.Equal(t, "movie", nextType("All"))
	assert.Equal(t, "episode", nextType("series"))
	assert.Equal(t, "All", nextType("episode"))
	assert.Equal(t, "All", nextType("bogus"))
}

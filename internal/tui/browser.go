package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/favorites"
	"github.com/lepinkainen/marquee/internal/listing"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/session"
)

// MovieSource is the part of the OMDb client the browser calls.
type MovieSource interface {
	listing.Searcher
	GetByID(ctx context.Context, id string) (*omdb.MovieDetail, error)
}

// BrowserDeps are the state containers the browser renders and drives.
type BrowserDeps struct {
	Movies    MovieSource
	Listing   *listing.Aggregator
	Favorites *favorites.Store
	User      *session.User
}

type screen int

const (
	screenResults screen = iota
	screenFavorites
	screenDetail
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputYear
)

type searchResultMsg struct {
	req  listing.Request
	resp *omdb.SearchResponse
	err  error
}

type detailResultMsg struct {
	id     string
	detail *omdb.MovieDetail
	err    error
}

type browserModel struct {
	ctx  context.Context
	deps BrowserDeps

	screen     screen
	backTo     screen
	results    list.Model
	favorites  list.Model
	input      textinput.Model
	inputMode  inputMode
	spinner    spinner.Model
	notice     string
	width      int

	detailID      string
	detail        *omdb.MovieDetail
	detailLoading bool
	detailErr     string
}

func newBrowserModel(ctx context.Context, deps BrowserDeps) *browserModel {
	input := textinput.New()
	input.CharLimit = 100
	input.Prompt = "> "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := &browserModel{
		ctx:       ctx,
		deps:      deps,
		results:   newMovieList(nil),
		favorites: newMovieList(nil),
		input:     input,
		spinner:   sp,
		width:     defaultListWidth,
	}
	m.results.SetStatusBarItemName("movie", "movies")
	m.favorites.SetStatusBarItemName("favorite", "favorites")
	m.syncFavorites()
	return m
}

// Browse runs the interactive browser until the user quits.
func Browse(ctx context.Context, deps BrowserDeps) error {
	_, err := runProgram(newBrowserModel(ctx, deps))
	return err
}

func (m *browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.search(m.deps.Listing.BeginRefresh()))
}

// search issues req off the event loop; the result comes back as a searchResultMsg.
func (m *browserModel) search(req listing.Request) tea.Cmd {
	movies := m.deps.Movies
	ctx := m.ctx
	return func() tea.Msg {
		filters := req.Filters
		resp, err := movies.Search(ctx, req.Term, req.Page, &filters)
		return searchResultMsg{req: req, resp: resp, err: err}
	}
}

func (m *browserModel) openDetail(movie omdb.MovieSummary) tea.Cmd {
	if m.screen != screenDetail {
		m.backTo = m.screen
	}
	m.screen = screenDetail
	m.detailID = movie.ID
	m.detail = nil
	m.detailErr = ""
	m.detailLoading = true

	movies := m.deps.Movies
	ctx := m.ctx
	id := movie.ID
	return func() tea.Msg {
		detail, err := movies.GetByID(ctx, id)
		return detailResultMsg{id: id, detail: detail, err: err}
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-10, 5)
		m.results.SetSize(m.width, height)
		m.favorites.SetSize(m.width, height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		m.applySearch(msg)
		return m, nil

	case detailResultMsg:
		m.applyDetail(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.inputMode != inputNone {
			return m, m.updateInput(msg)
		}
		switch m.screen {
		case screenDetail:
			return m, m.updateDetail(msg)
		case screenFavorites:
			return m, m.updateFavorites(msg)
		default:
			return m, m.updateResults(msg)
		}
	}
	return m, nil
}

func (m *browserModel) applySearch(msg searchResultMsg) {
	if err := m.deps.Listing.Complete(msg.req, msg.resp, msg.err); err != nil && !errors.IsNotFoundError(err) {
		slog.Debug("Search failed in browser", "error", err)
	}
	m.syncResults(msg.req.Replace)
}

func (m *browserModel) applyDetail(msg detailResultMsg) {
	if msg.id != m.detailID {
		return
	}
	m.detailLoading = false
	switch {
	case msg.err != nil:
		slog.Error("Failed to load movie detail", "id", msg.id, "error", msg.err)
		m.detailErr = errors.UserMessage(msg.err)
	case !msg.detail.OK():
		reason := ""
		if msg.detail != nil {
			reason = msg.detail.Error
		}
		m.detailErr = errors.UserMessage(errors.NewNotFoundError(reason))
	default:
		m.detail = msg.detail
	}
}

func (m *browserModel) syncResults(reset bool) {
	state := m.deps.Listing.Snapshot()
	m.results.SetItems(movieItems(state.Results, m.deps.Favorites.IsFavorite))
	if reset {
		m.results.ResetSelected()
	}
}

func (m *browserModel) syncFavorites() {
	m.favorites.SetItems(movieItems(m.deps.Favorites.List(), func(string) bool { return true }))
}

func (m *browserModel) toggleFavorite(movie omdb.MovieSummary) {
	if m.deps.Favorites.Toggle(m.ctx, movie) {
		m.notice = fmt.Sprintf("Added %s to favorites", movie.Title)
	} else {
		m.notice = fmt.Sprintf("Removed %s from favorites", movie.Title)
	}
	m.syncFavorites()
	m.syncResults(false)
}

func (m *browserModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.inputMode = inputNone
		m.input.Blur()
		return nil
	case "enter":
		mode := m.inputMode
		value := strings.TrimSpace(m.input.Value())
		m.inputMode = inputNone
		m.input.Blur()
		switch mode {
		case inputSearch:
			req := m.deps.Listing.BeginSetTerm(value)
			m.syncResults(true)
			return m.search(req)
		case inputYear:
			if value == "" {
				value = omdb.FilterAll
			}
			return m.applyFilters(omdb.FilterOptions{Type: m.deps.Listing.Snapshot().Filters.Type, Year: value})
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *browserModel) applyFilters(filters omdb.FilterOptions) tea.Cmd {
	req, err := m.deps.Listing.BeginApplyFilters(filters)
	if err != nil {
		m.notice = err.Error()
		return nil
	}
	m.notice = ""
	m.syncResults(true)
	return m.search(req)
}

func (m *browserModel) startInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.inputMode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *browserModel) updateResults(msg tea.KeyMsg) tea.Cmd {
	agg := m.deps.Listing
	state := agg.Snapshot()

	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		m.screen = screenFavorites
		return nil
	case "/":
		return m.startInput(inputSearch, state.Term, "Search movies")
	case "y":
		year := state.Filters.Year
		if year == omdb.FilterAll {
			year = ""
		}
		return m.startInput(inputYear, year, "Year (empty for All)")
	case "t":
		return m.applyFilters(omdb.FilterOptions{Type: nextType(state.Filters.Type), Year: state.Filters.Year})
	case "c":
		return m.applyFilters(omdb.DefaultFilters())
	case "r":
		if req, ok := agg.BeginRetry(); ok {
			m.syncResults(true)
			return m.search(req)
		}
		req := agg.BeginRefresh()
		m.syncResults(true)
		return m.search(req)
	case "n":
		return m.loadMore()
	case "f":
		if selected, ok := m.results.SelectedItem().(movieItem); ok {
			m.toggleFavorite(selected.MovieSummary)
		}
		return nil
	case "enter":
		if selected, ok := m.results.SelectedItem().(movieItem); ok {
			return m.openDetail(selected.MovieSummary)
		}
		return nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)

	// Scrolling onto the last row pulls in the next page.
	if n := len(m.results.Items()); n > 0 && m.results.Index() == n-1 {
		return tea.Batch(cmd, m.loadMore())
	}
	return cmd
}

func (m *browserModel) loadMore() tea.Cmd {
	req, ok := m.deps.Listing.BeginLoadMore()
	if !ok {
		return nil
	}
	return m.search(req)
}

func (m *browserModel) updateFavorites(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "esc":
		m.screen = screenResults
		return nil
	case "f", "d":
		if selected, ok := m.favorites.SelectedItem().(movieItem); ok {
			m.toggleFavorite(selected.MovieSummary)
		}
		return nil
	case "enter":
		if selected, ok := m.favorites.SelectedItem().(movieItem); ok {
			return m.openDetail(selected.MovieSummary)
		}
		return nil
	}

	var cmd tea.Cmd
	m.favorites, cmd = m.favorites.Update(msg)
	return cmd
}

func (m *browserModel) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		m.screen = m.backTo
		m.detailID = ""
		return nil
	case "f":
		if m.detail != nil {
			m.toggleFavorite(m.detail.Summary())
		}
		return nil
	case "r":
		if m.detailErr != "" {
			return m.openDetail(omdb.MovieSummary{ID: m.detailID})
		}
	}
	return nil
}

func nextType(current string) string {
	opts := omdb.TypeOptions()
	i := slices.Index(opts, current)
	return opts[(i+1)%len(opts)]
}

func (m *browserModel) View() string {
	var body string
	switch m.screen {
	case screenDetail:
		body = m.detailView()
	case screenFavorites:
		body = m.favorites.View()
	default:
		body = m.resultsView()
	}

	parts := []string{m.headerView(), body}
	if m.notice != "" {
		parts = append(parts, statusStyle.Render(m.notice))
	}
	parts = append(parts, helpStyle.Render(m.helpText()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *browserModel) headerView() string {
	search, favs := tabStyle, tabStyle
	if m.screen == screenFavorites {
		favs = activeTabStyle
	} else {
		search = activeTabStyle
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		search.Render("Search"),
		favs.Render(fmt.Sprintf("Favorites (%d)", m.deps.Favorites.Len())),
	)
	if m.deps.User != nil {
		tabs = lipgloss.JoinHorizontal(lipgloss.Top, tabs, statusStyle.Render("  signed in as "+m.deps.User.Name))
	}
	return headerStyle.Render(tabs)
}

func (m *browserModel) resultsView() string {
	state := m.deps.Listing.Snapshot()

	var lines []string
	if m.inputMode != inputNone {
		lines = append(lines, m.input.View())
	} else {
		lines = append(lines, fmt.Sprintf("%s %q  %s",
			labelStyle.Render("Search:"), state.Term, statusStyle.Render(filterSummary(state.Filters))))
	}

	switch state.Status {
	case listing.StatusLoading:
		lines = append(lines, fmt.Sprintf("%s Loading page %d...", m.spinner.View(), state.LoadingPage))
	case listing.StatusError:
		lines = append(lines, errorStyle.Render(state.Message), statusStyle.Render("Press r to retry"))
	default:
		lines = append(lines, statusStyle.Render(pageSummary(state)))
	}

	if state.Status != listing.StatusError {
		lines = append(lines, m.results.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func filterSummary(f omdb.FilterOptions) string {
	if f.ActiveCount() == 0 {
		return "no filters"
	}
	return fmt.Sprintf("type: %s | year: %s", f.Type, f.Year)
}

func pageSummary(state listing.State) string {
	if state.TotalResults == 0 {
		return "No results"
	}
	pages := listing.TotalPages(state.TotalResults)
	summary := fmt.Sprintf("Showing %d of %d results | page %d/%d", len(state.Results), state.TotalResults, state.Page, pages)
	if len(state.Results) < state.TotalResults {
		summary += " | n: load more"
	}
	return summary
}

func (m *browserModel) helpText() string {
	if m.inputMode != inputNone {
		return "Enter apply | Esc cancel"
	}
	switch m.screen {
	case screenDetail:
		return "f favorite | Esc back | q quit"
	case screenFavorites:
		return "Enter details | f remove | Tab search | q quit"
	default:
		return "/ search | t type | y year | c clear filters | n more | r refresh | f favorite | Tab favorites | q quit"
	}
}

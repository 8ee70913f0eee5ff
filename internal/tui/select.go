// Package tui provides the interactive terminal front end.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/omdb"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user backed out without choosing.
	ActionSkipped
	// ActionStopped indicates the user quit.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *omdb.MovieSummary
}

// movieItem adapts a search result to list.Item.
type movieItem struct {
	omdb.MovieSummary
	favorite bool
}

func (i movieItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.MovieSummary.Title, i.Year)
}

func (i movieItem) FilterValue() string {
	return i.MovieSummary.Title
}

func (i movieItem) Description() string {
	return i.Type
}

type itemStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	typeStyle  lipgloss.Style
	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
	heartStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.
		BorderForeground(colorAccent).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		metaStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		heartStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FA320A")),
	}
}

type movieDelegate struct {
	styles itemStyles
}

func newDelegate() movieDelegate {
	return movieDelegate{styles: newItemStyles()}
}

func (d movieDelegate) Height() int                         { return 4 }
func (d movieDelegate) Spacing() int                        { return 0 }
func (d movieDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d movieDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	movie, ok := item.(movieItem)
	if !ok {
		return
	}

	heart := "  "
	if movie.favorite {
		heart = d.styles.heartStyle.Render("♥ ")
	}

	typeLine := d.styles.typeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(movie.Type)))
	titleLine := heart + d.styles.titleStyle.Render(truncate(movie.Title(), m.Width()-8))
	metaLine := d.styles.metaStyle.Render(formatMetadata(movie.MovieSummary))

	content := lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, typeLine, " ", titleLine), metaLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

func newMovieList(items []list.Item) list.Model {
	l := list.New(items, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle().Foreground(colorMuted)
	return l
}

func movieItems(movies []omdb.MovieSummary, isFavorite func(string) bool) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		fav := false
		if isFavorite != nil {
			fav = isFavorite(m.ID)
		}
		items[i] = movieItem{MovieSummary: m, favorite: fav}
	}
	return items
}

type selectModel struct {
	list        list.Model
	searchTitle string
	result      SelectionResult
}

func newSelectModel(title string, movies []omdb.MovieSummary) *selectModel {
	return &selectModel{
		list:        newMovieList(movieItems(movies, nil)),
		searchTitle: title,
		result:      SelectionResult{Action: ActionNone},
	}
}

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(movieItem); ok {
				result := selected.MovieSummary
				m.result = SelectionResult{Action: ActionSelected, Selection: &result}
				return m, tea.Quit
			}
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		case "s", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *selectModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Multiple results found for: %s", m.searchTitle))
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		skipButtonStyle.Render(" Skip "),
		lipgloss.NewStyle().Padding(0, 2).Render(""),
		stopButtonStyle.Render(" Quit "),
	)
	help := helpStyle.Render("Up/Down navigate | Enter select | s skip | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), buttons, help)
}

// Select lets the user pick one of several search results. A single result
// is returned without showing the UI.
func Select(title string, results []omdb.MovieSummary) (SelectionResult, error) {
	switch len(results) {
	case 0:
		return SelectionResult{Action: ActionSkipped}, nil
	case 1:
		only := results[0]
		return SelectionResult{Action: ActionSelected, Selection: &only}, nil
	}

	finalModel, err := runProgram(newSelectModel(title, results))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*selectModel); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// formatMetadata builds the "type | year | id | poster" line under a title.
func formatMetadata(m omdb.MovieSummary) string {
	var parts []string
	if m.Year != "" {
		parts = append(parts, m.Year)
	}
	if m.ID != "" {
		parts = append(parts, m.ID)
	}
	if m.HasPoster() {
		parts = append(parts, "poster")
	}
	if len(parts) == 0 {
		return "No metadata available"
	}
	return strings.Join(parts, " | ")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/omdb"
)

func stubRunProgram(t *testing.T, fn func(tea.Model) (tea.Model, error)) {
	t.Helper()
	orig := runProgram
	runProgram = fn
	t.Cleanup(func() { runProgram = orig })
}

func TestSelectShortcuts(t *testing.T) {
	stubRunProgram(t, func(tea.Model) (tea.Model, error) {
		t.Fatal("UI must not run for fewer than two results")
		return nil, nil
	})

	result, err := Select("nothing", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, result.Action)

	only := omdb.MovieSummary{ID: "tt0371746", Title: "Iron Man", Year: "2008"}
	result, err = Select("Iron Man", []omdb.MovieSummary{only})
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	assert.Equal(t, &only, result.Selection)
}

func TestSelectEnterPicksHighlighted(t *testing.T) {
	movies := []omdb.MovieSummary{
		{ID: "tt0371746", Title: "Iron Man", Year: "2008", Type: "movie"},
		{ID: "tt1228705", Title: "Iron Man 2", Year: "2010", Type: "movie"},
	}

	stubRunProgram(t, func(m tea.Model) (tea.Model, error) {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, nil
	})

	result, err := Select("Iron Man", movies)
	require.NoError(t, err)
	require.Equal(t, ActionSelected, result.Action)
	assert.Equal(t, "tt1228705", result.Selection.ID)
}

func TestSelectQuitAndSkip(t *testing.T) {
	movies := []omdb.MovieSummary{{ID: "tt1"}, {ID: "tt2"}}

	tests := []struct {
		name string
		key  tea.KeyMsg
		want SelectionAction
	}{
		{name: "q stops", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, want: ActionStopped},
		{name: "s skips", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, want: ActionSkipped},
		{name: "esc skips", key: tea.KeyMsg{Type: tea.KeyEsc}, want: ActionSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubRunProgram(t, func(m tea.Model) (tea.Model, error) {
				m, _ = m.Update(tt.key)
				return m, nil
			})
			result, err := Select("x", movies)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Action)
			assert.Nil(t, result.Selection)
		})
	}
}

func TestSelectView(t *testing.T) {
	m := newSelectModel("Iron Man", []omdb.MovieSummary{{ID: "tt0371746", Title: "Iron Man", Year: "2008", Type: "movie"}})
	view := m.View()
	assert.Contains(t, view, "Multiple results found for: Iron Man")
	assert.Contains(t, view, "Iron Man (2008)")
	assert.Contains(t, view, "[MOVIE]")
}

func TestTruncateAndClamp(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long...", truncate("a long title here", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "Loki (2...", truncate("Loki (2021–2023)", 10))
	assert.Equal(t, "Iron Man", truncate("  Iron   Man ", 20))

	assert.Equal(t, 72, clamp(72, 0, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "2008 | tt0371746 | poster", formatMetadata(omdb.MovieSummary{ID: "tt0371746", Year: "2008", Poster: "https://x/p.jpg"}))
	assert.Equal(t, "No metadata available", formatMetadata(omdb.MovieSummary{}))
}

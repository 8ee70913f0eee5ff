package tui

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/lepinkainen/marquee/internal/ratings"
)

func TestRenderRatings(t *testing.T) {
	out := renderRatings([]ratings.Point{
		{Source: ratings.SourceIMDb, Value: 8.5, Color: ratings.ColorIMDb},
		{Source: ratings.SourceRottenTomatoes, Value: 10, Color: ratings.ColorRottenTomatoes},
		{Source: ratings.SourceMetacritic, Value: 0, Color: ratings.ColorMetacritic},
	}, 10)

	lines := strings.Split(out, "\n")
	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], "IMDb")
	assert.Contains(t, lines[0], " 8.5")
	assert.Equal(t, 9, strings.Count(lines[0], "█"))
	assert.Equal(t, 10, strings.Count(lines[1], "█"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
	assert.Equal(t, 10, strings.Count(lines[2], "░"))
}

func TestRenderRatingsEmpty(t *testing.T) {
	assert.Contains(t, renderRatings(nil, 10), "No ratings available")
}

func TestRenderGenres(t *testing.T) {
	out := renderGenres([]ratings.GenreSlice{
		{Genre: "Action", Weight: 1, Color: ratings.GenrePalette[0]},
		{Genre: "Adventure", Weight: 1, Color: ratings.GenrePalette[1]},
		{Genre: "Sci-Fi", Weight: 1, Color: ratings.GenrePalette[2]},
	}, 20)

	strip, legend, ok := strings.Cut(out, "\n")
	assert.True(t, ok)
	assert.Equal(t, 20, strings.Count(strip, "█"))
	assert.Contains(t, legend, "Action")
	assert.Contains(t, legend, "Adventure")
	assert.Contains(t, legend, "Sci-Fi")

	assert.Contains(t, renderGenres(nil, 20), "No genres available")
}

func TestFormatVotes(t *testing.T) {
	assert.Equal(t, "1.5M", formatVotes(1_502_321))
	assert.Equal(t, "12.3K", formatVotes(12_345))
	assert.Equal(t, "999", formatVotes(999))
}

func TestJoinPresent(t *testing.T) {
	assert.Equal(t, "PG-13 | 143 min", joinPresent(" | ", "PG-13", "N/A", "", "143 min"))
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/ratings"
)

const (
	defaultBarWidth = 30
	sourceColumn    = 16
)

// renderRatings draws one horizontal bar per rating on the 0-10 scale.
func renderRatings(points []ratings.Point, barWidth int) string {
	if len(points) == 0 {
		return statusStyle.Render("No ratings available")
	}
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	rows := make([]string, 0, len(points))
	for _, p := range points {
		filled := int(math.Round(p.Value / ratings.MaxValue * float64(barWidth)))
		filled = max(0, min(filled, barWidth))

		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(strings.Repeat("█", filled))
		rest := statusStyle.Render(strings.Repeat("░", barWidth-filled))
		label := labelStyle.Render(fmt.Sprintf("%-*s", sourceColumn, truncate(p.Source, sourceColumn)))
		rows = append(rows, fmt.Sprintf("%s %s%s %4.1f", label, bar, rest, p.Value))
	}
	return strings.Join(rows, "\n")
}

// renderGenres draws the genre distribution as equal colored segments with a legend.
func renderGenres(slices []ratings.GenreSlice, width int) string {
	if len(slices) == 0 {
		return statusStyle.Render("No genres available")
	}
	if width <= 0 {
		width = defaultBarWidth
	}

	total := 0
	for _, s := range slices {
		total += s.Weight
	}

	var strip, legend strings.Builder
	used := 0
	for i, s := range slices {
		seg := width * s.Weight / total
		if i == len(slices)-1 {
			seg = width - used
		}
		used += seg
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		strip.WriteString(style.Render(strings.Repeat("█", seg)))

		if i > 0 {
			legend.WriteString("  ")
		}
		legend.WriteString(style.Render("■") + " " + s.Genre)
	}
	return strip.String() + "\n" + legend.String()
}

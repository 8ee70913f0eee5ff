package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/ratings"
)

var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginTop(1)
)

func (m *browserModel) detailView() string {
	if m.detailLoading {
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.detailID)
	}
	if m.detailErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render(m.detailErr),
			statusStyle.Render("Press r to retry"))
	}
	if m.detail == nil {
		return ""
	}
	return renderDetail(m.detail, m.deps.Favorites.IsFavorite(m.detail.ID), m.width)
}

func renderDetail(d *omdb.MovieDetail, favorite bool, width int) string {
	title := detailTitleStyle.Render(fmt.Sprintf("%s (%s)", d.Title, d.Year))
	if favorite {
		title += lipgloss.NewStyle().Foreground(lipgloss.Color(ratings.ColorRottenTomatoes)).Render("  ♥")
	}

	meta := joinPresent(" | ", d.Rated, d.Runtime, d.Genre, d.Released)

	facts := []string{}
	for _, f := range []struct{ label, value string }{
		{"Director", d.Director},
		{"Writer", d.Writer},
		{"Actors", d.Actors},
		{"Language", d.Language},
		{"Country", d.Country},
		{"Awards", d.Awards},
		{"Box office", d.BoxOffice},
		{"Production", d.Production},
	} {
		if present(f.value) {
			facts = append(facts, labelStyle.Render(f.label+": ")+truncate(f.value, width-len(f.label)-2))
		}
	}
	if votes, ok := ratings.ParseVotes(d.ImdbVotes); ok {
		facts = append(facts, labelStyle.Render("IMDb votes: ")+formatVotes(votes))
	}

	plot := ""
	if present(d.Plot) {
		plot = lipgloss.NewStyle().Width(width).Render(d.Plot)
	}

	barWidth := max(10, width-sourceColumn-8)
	sections := []string{
		title,
		statusStyle.Render(meta),
		plot,
		strings.Join(facts, "\n"),
		sectionStyle.Render("Ratings"),
		renderRatings(ratings.Normalize(d), barWidth),
		sectionStyle.Render("Genres"),
		renderGenres(ratings.Genres(d), width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func present(v string) bool {
	return v != "" && v != omdb.NotAvailable
}

func joinPresent(sep string, values ...string) string {
	var out []string
	for _, v := range values {
		if present(v) {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func formatVotes(count int) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1000:
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	default:
		return fmt.Sprintf("%d", count)
	}
}

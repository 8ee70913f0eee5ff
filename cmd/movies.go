package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/fileutil"
	"github.com/lepinkainen/marquee/internal/listing"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/ratings"
	"github.com/lepinkainen/marquee/internal/tui"
)

// FilterFlags are the search filters shared by browse and search.
type FilterFlags struct {
	Type string `short:"t" help:"Filter by type (All, movie, series, episode)" default:"All"`
	Year string `short:"y" help:"Filter by release year (All or YYYY)" default:"All"`
}

func (f FilterFlags) options() (omdb.FilterOptions, error) {
	filters := omdb.FilterOptions{Type: f.Type, Year: f.Year}
	if err := filters.Validate(); err != nil {
		return omdb.FilterOptions{}, errors.NewValidationError(map[string]string{"filters": err.Error()})
	}
	return filters, nil
}

// BrowseCmd opens the interactive browser
type BrowseCmd struct {
	Term string `arg:"" optional:"" help:"Initial search term (defaults to search.default_term)"`
	FilterFlags
}

// SearchCmd prints one page of search results
type SearchCmd struct {
	Term string `arg:"" help:"Search term"`
	FilterFlags
	Page int  `short:"p" help:"Page to show" default:"1"`
	More int  `short:"m" help:"Load this many additional pages after the first" default:"0"`
	JSON bool `help:"Print results as JSON"`
}

// ShowCmd prints a movie's details and ratings
type ShowCmd struct {
	Query string `arg:"" help:"IMDb ID (tt...) or search term"`
	JSON  bool   `help:"Print the raw record as JSON"`
}

// FeaturedCmd lists the featured titles
type FeaturedCmd struct{}

// PosterCmd downloads a movie poster
type PosterCmd struct {
	Query     string `arg:"" help:"IMDb ID (tt...) or search term"`
	Dir       string `short:"o" help:"Directory to save into (defaults to posters.dir)"`
	Width     int    `help:"Maximum poster width in pixels" default:"600"`
	Overwrite bool   `help:"Download again even if the poster file exists"`
}

func (b *BrowseCmd) Run() error {
	filters, err := b.options()
	if err != nil {
		return err
	}

	return withApp(func(ctx context.Context, a *app) error {
		if !a.session.IsAuthenticated() {
			if err := interactiveLogin(ctx, a); err != nil {
				return err
			}
		}
		client, err := a.movies()
		if err != nil {
			return err
		}

		term := b.Term
		if term == "" {
			term = config.DefaultSearch
		}
		agg := listing.NewAggregator(client, listing.WithInitialTerm(term), listing.WithInitialFilters(filters))

		return browse(ctx, tui.BrowserDeps{
			Movies:    client,
			Listing:   agg,
			Favorites: a.favorites,
			User:      a.session.User(),
		})
	})
}

func (s *SearchCmd) Run() error {
	filters, err := s.options()
	if err != nil {
		return err
	}

	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		client, err := a.movies()
		if err != nil {
			return err
		}

		agg := listing.NewAggregator(client, listing.WithInitialTerm(s.Term), listing.WithInitialFilters(filters))
		if err := agg.Refresh(ctx); err != nil {
			if errors.IsNotFoundError(err) {
				return printResults(stdout, agg.Snapshot())
			}
			return err
		}
		if s.Page > 1 {
			ok, err := agg.GoToPage(ctx, s.Page)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("page %d out of range (1-%d)", s.Page, agg.TotalPages())
			}
		}
		for range s.More {
			ok, err := agg.LoadMore(ctx)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}

		state := agg.Snapshot()
		if s.JSON {
			return writeJSON(stdout, state.Results)
		}
		return printResults(stdout, state)
	})
}

func (s *ShowCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		detail, err := a.resolveMovie(ctx, s.Query)
		if err != nil {
			return err
		}
		if s.JSON {
			return writeJSON(stdout, detail)
		}
		printDetail(stdout, detail, a.favorites.IsFavorite(detail.ID))
		return nil
	})
}

func (f *FeaturedCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		client, err := a.movies()
		if err != nil {
			return err
		}

		movies, err := client.Featured(ctx, omdb.FeaturedIDs)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(movies))
		for _, m := range movies {
			rows = append(rows, []string{m.ID, m.Title, m.Year, m.ImdbRating, m.Genre})
		}
		_, err = fmt.Fprintln(stdout, newTable("ID", "Title", "Year", "IMDb", "Genre").Rows(rows...).String())
		return err
	})
}

func (p *PosterCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		detail, err := a.resolveMovie(ctx, p.Query)
		if err != nil {
			return err
		}

		dir := p.Dir
		if dir == "" {
			dir = config.PosterDir
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create poster directory: %w", err)
		}

		path := filepath.Join(dir, omdb.PosterFilename(detail.Summary()))
		if fileutil.FileExists(path) && !p.Overwrite {
			slog.Info("Poster already exists, skipping", "path", path)
			_, err = fmt.Fprintln(stdout, path)
			return err
		}
		if err := a.client.DownloadPoster(ctx, detail.Poster, path, p.Width); err != nil {
			return err
		}

		slog.Info("Poster saved", "title", detail.Title, "path", path)
		_, err = fmt.Fprintln(stdout, path)
		return err
	})
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}

func printResults(w io.Writer, state listing.State) error {
	if len(state.Results) == 0 {
		msg := state.Message
		if msg == "" {
			msg = errors.NoResultsMessage
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	rows := make([][]string, 0, len(state.Results))
	for _, m := range state.Results {
		rows = append(rows, []string{m.ID, m.Title, m.Year, m.Type})
	}
	_, err := fmt.Fprintf(w, "%s\nShowing %d of %d results (page %d/%d)\n",
		newTable("ID", "Title", "Year", "Type").Rows(rows...).String(),
		len(state.Results), state.TotalResults, state.Page, listing.TotalPages(state.TotalResults))
	return err
}

func printDetail(w io.Writer, d *omdb.MovieDetail, favorite bool) {
	title := fmt.Sprintf("%s (%s)", d.Title, d.Year)
	if favorite {
		title += " *"
	}
	fmt.Fprintln(w, title)

	for _, f := range []struct{ label, value string }{
		{"Rated", d.Rated},
		{"Runtime", d.Runtime},
		{"Genre", d.Genre},
		{"Director", d.Director},
		{"Actors", d.Actors},
		{"Plot", d.Plot},
	} {
		if f.value != "" && f.value != omdb.NotAvailable {
			fmt.Fprintf(w, "%-9s %s\n", f.label+":", f.value)
		}
	}

	points := ratings.Normalize(d)
	if len(points) > 0 {
		fmt.Fprintln(w, "Ratings:")
		for _, p := range points {
			fmt.Fprintf(w, "  %-16s %4.1f/10\n", p.Source, p.Value)
		}
	}

	if genres := ratings.Genres(d); len(genres) > 0 {
		names := make([]string, len(genres))
		for i, g := range genres {
			names[i] = g.Genre
		}
		fmt.Fprintf(w, "Genres:   %s\n", strings.Join(names, ", "))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

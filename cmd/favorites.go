package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/favorites"
	"github.com/lepinkainen/marquee/internal/fileutil"
)

// FavoritesCmd groups the favorites subcommands
type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List favorites"`
	Add    FavoritesAddCmd    `cmd:"" help:"Add a movie to favorites"`
	Remove FavoritesRemoveCmd `cmd:"" help:"Remove a movie from favorites"`
	Export FavoritesExportCmd `cmd:"" help:"Export favorites as JSON or YAML"`
}

// FavoritesListCmd prints the favorites
type FavoritesListCmd struct{}

// FavoritesAddCmd adds a movie by ID or search term
type FavoritesAddCmd struct {
	Query string `arg:"" help:"IMDb ID (tt...) or search term"`
}

// FavoritesRemoveCmd removes a favorite by ID
type FavoritesRemoveCmd struct {
	ID string `arg:"" help:"IMDb ID of the favorite"`
}

// FavoritesExportCmd writes the favorites to a file or stdout
type FavoritesExportCmd struct {
	Format    string `short:"f" help:"Output format (json, yaml)" enum:"json,yaml" default:"json"`
	Output    string `short:"o" help:"Output file (defaults to stdout)"`
	Overwrite bool   `help:"Replace the output file if it exists"`
}

func (l *FavoritesListCmd) Run() error {
	return withApp(func(_ context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}

		list := a.favorites.List()
		if len(list) == 0 {
			_, err := fmt.Fprintln(stdout, "No favorites yet")
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, m := range list {
			rows = append(rows, []string{m.ID, m.Title, m.Year, m.Type})
		}
		_, err := fmt.Fprintln(stdout, newTable("ID", "Title", "Year", "Type").Rows(rows...).String())
		return err
	})
}

func (c *FavoritesAddCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		detail, err := a.resolveMovie(ctx, c.Query)
		if err != nil {
			return err
		}

		if !a.favorites.Add(ctx, detail.Summary()) {
			_, err = fmt.Fprintf(stdout, "%s (%s) is already a favorite\n", detail.Title, detail.Year)
			return err
		}
		_, err = fmt.Fprintf(stdout, "Added %s (%s) to favorites\n", detail.Title, detail.Year)
		return err
	})
}

func (c *FavoritesRemoveCmd) Run() error {
	return withApp(func(ctx context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}
		if !a.favorites.Remove(ctx, c.ID) {
			return errors.NewNotFoundError(fmt.Sprintf("%s is not a favorite", c.ID))
		}
		_, err := fmt.Fprintf(stdout, "Removed %s from favorites\n", c.ID)
		return err
	})
}

func (c *FavoritesExportCmd) Run() error {
	return withApp(func(_ context.Context, a *app) error {
		if err := a.requireSession(); err != nil {
			return err
		}

		if c.Output == "" {
			return favorites.Export(stdout, a.favorites.List(), c.Format)
		}

		var buf bytes.Buffer
		if err := favorites.Export(&buf, a.favorites.List(), c.Format); err != nil {
			return err
		}
		written, err := fileutil.WriteFile(c.Output, buf.Bytes(), c.Overwrite)
		if err != nil {
			return err
		}
		if !written {
			return fmt.Errorf("%s already exists (use --overwrite to replace it)", c.Output)
		}
		slog.Info("Exported favorites", "path", c.Output, "count", a.favorites.Len(), "format", c.Format)
		return nil
	})
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/favorites"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/session"
	"github.com/lepinkainen/marquee/internal/storage"
	"github.com/lepinkainen/marquee/internal/tui"
)

// Seams replaced in tests.
var (
	openStorage    = storage.Open
	browse         = tui.Browse
	selectMovie    = tui.Select
	promptLogin    = tui.PromptLogin
	promptRegister = tui.PromptRegister

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var imdbIDPattern = regexp.MustCompile(`^tt\d{5,}$`)

// app holds the stores and client a command works with.
type app struct {
	kv        storage.Store
	session   *session.Store
	favorites *favorites.Store
	client    *omdb.Client
}

func newApp(ctx context.Context) (*app, error) {
	kv, err := openStorage(ctx, config.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	validator, err := session.NewLocalValidator(kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	sess := session.NewStore(kv, validator, session.WithTTL(config.SessionTTL))
	if _, err := sess.Restore(ctx); err != nil {
		slog.Warn("Failed to restore session", "error", err)
	}

	favs := favorites.NewStore(kv)
	if err := favs.Load(ctx); err != nil {
		slog.Warn("Failed to load favorites", "error", err)
	}

	client := omdb.NewClient(config.OMDBAPIKey,
		omdb.WithBaseURL(config.OMDBBaseURL),
		omdb.WithHTTPClient(&http.Client{Timeout: config.OMDBTimeout}),
		omdb.WithRateLimiter(ratelimit.New("OMDb", config.OMDBRequestsPerSecond)),
		omdb.WithTokenSource(sess),
		omdb.WithDefaultTerm(config.DefaultSearch),
	)

	return &app{kv: kv, session: sess, favorites: favs, client: client}, nil
}

func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// requireSession rejects commands run without a signed in user.
func (a *app) requireSession() error {
	if !a.session.IsAuthenticated() {
		return errors.NewAuthError("Not signed in. Run 'marquee login' or 'marquee register' first.")
	}
	return nil
}

// movies returns the OMDb client once an API key is configured.
func (a *app) movies() (*omdb.Client, error) {
	if config.OMDBAPIKey == "" {
		return nil, fmt.Errorf("OMDb API key is required (set OMDB_API_KEY, omdb.api_key in config or --api-key)")
	}
	return a.client, nil
}

// withApp opens the app for one command run and closes it afterwards.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// resolveMovie turns an IMDb ID or a search term into a full record.
// Ambiguous search terms are resolved with the interactive picker.
func (a *app) resolveMovie(ctx context.Context, query string) (*omdb.MovieDetail, error) {
	client, err := a.movies()
	if err != nil {
		return nil, err
	}

	id := query
	if !imdbIDPattern.MatchString(query) {
		resp, err := client.Search(ctx, query, 1, nil)
		if err != nil {
			return nil, err
		}
		if !resp.OK() {
			return nil, errors.NewNotFoundError(resp.Error)
		}

		result, err := selectMovie(query, resp.Search)
		if err != nil {
			return nil, fmt.Errorf("movie selection failed: %w", err)
		}
		switch result.Action {
		case tui.ActionStopped:
			return nil, fmt.Errorf("selection cancelled")
		case tui.ActionSelected:
			id = result.Selection.ID
		default:
			return nil, errors.NewNotFoundError("No movie selected")
		}
	}

	detail, err := client.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !detail.OK() {
		return nil, errors.NewNotFoundError(detail.Error)
	}
	return detail, nil
}

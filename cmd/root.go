package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/errors"
)

// Globals are flags shared by every command.
type Globals struct {
	Debug     bool   `help:"Enable debug logging"`
	Ephemeral bool   `help:"Keep the session and favorites in memory only"`
	Storage   string `help:"Storage backend (sqlite, redis, memory); defaults to storage.backend from config"`
	APIKey    string `name:"api-key" help:"OMDb API key; defaults to OMDB_API_KEY"`
}

// CLI represents the complete command structure for the marquee application
type CLI struct {
	Globals

	Browse    BrowseCmd    `cmd:"" default:"withargs" help:"Browse movies interactively"`
	Search    SearchCmd    `cmd:"" help:"Search movies and print a page of results"`
	Show      ShowCmd      `cmd:"" help:"Show details and ratings for a movie"`
	Featured  FeaturedCmd  `cmd:"" help:"List the featured movies"`
	Poster    PosterCmd    `cmd:"" help:"Download a movie poster"`
	Favorites FavoritesCmd `cmd:"" help:"Manage favorite movies"`
	Login     LoginCmd     `cmd:"" help:"Sign in"`
	Register  RegisterCmd  `cmd:"" help:"Create an account and sign in"`
	Logout    LogoutCmd    `cmd:"" help:"Sign out"`
	Whoami    WhoamiCmd    `cmd:"" help:"Show the signed in user"`
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("marquee"),
		kong.Description("Search, browse and collect movies from OMDb in the terminal."),
		kong.UsageOnError(),
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)
	initConfig()

	var cli CLI
	ctx := kong.Parse(&cli, kongOptions()...)

	level := config.LogLevel()
	if cli.Debug {
		level = slog.LevelDebug
	}
	initLogging(level)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		reportError(stderr, err)
		os.Exit(1)
	}
}

// reportError prints err for the user. Provider and transport failures are
// reduced to their generic message; the full error only goes to the debug log.
func reportError(w io.Writer, err error) {
	slog.Debug("Command failed", "error", err)

	msg := err.Error()
	switch {
	case errors.IsTransportError(err), errors.IsRateLimitError(err),
		errors.IsAuthError(err), errors.IsNotFoundError(err):
		msg = errors.UserMessage(err)
	}
	_, _ = fmt.Fprintf(w, "Error: %s\n", msg)
}

func initConfig() {
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config.SetDefaults()
	if err := config.BindEnv(); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults and environment")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOMDBAPIKey(cli.APIKey)

	switch {
	case cli.Ephemeral:
		viper.Set("storage.backend", "memory")
	case cli.Storage != "":
		viper.Set("storage.backend", cli.Storage)
	}
}

// initLogging writes human-readable logs to stderr; stdout belongs to the TUI and command output.
func initLogging(level slog.Level) {
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/storage"
)

// Global configuration variables
var (
	// OMDBAPIKey is the API key for OMDb (Open Movie Database)
	OMDBAPIKey string
	// OMDBBaseURL is the OMDb endpoint; overridable for tests and proxies
	OMDBBaseURL string
	// OMDBRequestsPerSecond throttles outgoing OMDb requests; 0 disables throttling
	OMDBRequestsPerSecond float64
	// OMDBTimeout bounds a single OMDb HTTP request
	OMDBTimeout time.Duration
	// DefaultSearch is the search term the browser starts with
	DefaultSearch string
	// SessionTTL is how long a login stays valid
	SessionTTL time.Duration
	// PosterDir is where downloaded posters are written
	PosterDir string
)

// SetDefaults registers default values for every known config key.
func SetDefaults() {
	viper.SetDefault("omdb.base_url", "https://www.omdbapi.com/")
	viper.SetDefault("omdb.requests_per_second", 1.0)
	viper.SetDefault("omdb.timeout", "15s")

	viper.SetDefault("search.default_term", "Marvel")

	viper.SetDefault("session.ttl", "24h")

	viper.SetDefault("storage.backend", storage.BackendSQLite)
	viper.SetDefault("storage.sqlite_path", "./marquee.db")
	viper.SetDefault("storage.redis.addr", "localhost:6379")
	viper.SetDefault("storage.redis.db", 0)
	viper.SetDefault("storage.redis.prefix", "marquee:")

	viper.SetDefault("posters.dir", "./posters/")
	viper.SetDefault("log.level", "info")
}

// BindEnv wires environment variables to config keys.
// The Expo-style variable name is accepted so existing .env files keep working.
func BindEnv() error {
	viper.AutomaticEnv()
	return errors.Join(
		viper.BindEnv("omdb.api_key", "OMDB_API_KEY", "EXPO_PUBLIC_OMDB_API_KEY"),
		viper.BindEnv("storage.backend", "MARQUEE_STORAGE"),
		viper.BindEnv("storage.redis.addr", "MARQUEE_REDIS_ADDR"),
		viper.BindEnv("storage.redis.password", "MARQUEE_REDIS_PASSWORD"),
	)
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No env file found", "path", path)
			return nil
		}
		return err
	}
	slog.Debug("Loaded env file", "path", path)
	return nil
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	OMDBAPIKey = viper.GetString("omdb.api_key")
	OMDBBaseURL = viper.GetString("omdb.base_url")
	OMDBRequestsPerSecond = viper.GetFloat64("omdb.requests_per_second")
	OMDBTimeout = durationOr("omdb.timeout", 15*time.Second)
	DefaultSearch = viper.GetString("search.default_term")
	SessionTTL = durationOr("session.ttl", 24*time.Hour)
	PosterDir = viper.GetString("posters.dir")
}

// SetOMDBAPIKey sets the OMDBAPIKey value
func SetOMDBAPIKey(key string) {
	if key != "" {
		OMDBAPIKey = key
	}
}

// StorageOptions returns the storage backend selection from config.
func StorageOptions() storage.Options {
	return storage.Options{
		Backend:       viper.GetString("storage.backend"),
		SQLitePath:    viper.GetString("storage.sqlite_path"),
		RedisAddr:     viper.GetString("storage.redis.addr"),
		RedisPassword: viper.GetString("storage.redis.password"),
		RedisDB:       viper.GetInt("storage.redis.db"),
		RedisPrefix:   viper.GetString("storage.redis.prefix"),
	}
}

// LogLevel returns the configured slog level; unknown values fall back to info.
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in config, using default", "key", key, "value", raw, "error", err)
		return fallback
	}
	return d
}

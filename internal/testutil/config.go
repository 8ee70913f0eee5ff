package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OMDBAPIKey            string
	OMDBBaseURL           string
	OMDBRequestsPerSecond float64
	OMDBTimeout           time.Duration
	DefaultSearch         string
	SessionTTL            time.Duration
	PosterDir             string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OMDBAPIKey:            config.OMDBAPIKey,
		OMDBBaseURL:           config.OMDBBaseURL,
		OMDBRequestsPerSecond: config.OMDBRequestsPerSecond,
		OMDBTimeout:           config.OMDBTimeout,
		DefaultSearch:         config.DefaultSearch,
		SessionTTL:            config.SessionTTL,
		PosterDir:             config.PosterDir,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OMDBAPIKey = state.OMDBAPIKey
	config.OMDBBaseURL = state.OMDBBaseURL
	config.OMDBRequestsPerSecond = state.OMDBRequestsPerSecond
	config.OMDBTimeout = state.OMDBTimeout
	config.DefaultSearch = state.DefaultSearch
	config.SessionTTL = state.SessionTTL
	config.PosterDir = state.PosterDir
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig points the OMDb client at baseURL with throttling disabled,
// stores data in env and restores everything when the test completes.
func SetTestConfig(t *testing.T, env *TestEnv, baseURL string) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()

	viper.Set("omdb.api_key", "test-omdb-key")
	viper.Set("omdb.base_url", baseURL)
	viper.Set("omdb.requests_per_second", 0)
	viper.Set("storage.backend", "sqlite")
	viper.Set("storage.sqlite_path", env.Path("marquee-test.db"))
	viper.Set("posters.dir", env.Path("posters"))

	config.InitConfig()
}

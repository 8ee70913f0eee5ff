package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/config"
)

func TestTestEnvPath(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("posters", "poster.jpg")
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(env.Path("."), "posters", "poster.jpg"), path)
	assert.True(t, env.contains(path))
	assert.False(t, env.contains(filepath.Dir(env.Path("."))))
}

func TestTestEnvFiles(t *testing.T) {
	env := NewTestEnv(t)

	assert.False(t, env.FileExists("nested/favorites.json"))
	env.WriteFileString("nested/favorites.json", `[{"imdbID":"tt0371746"}]`)
	env.RequireFileExists("nested/favorites.json")
	assert.Equal(t, `[{"imdbID":"tt0371746"}]`, env.ReadFileString("nested/favorites.json"))

	env.MkdirAll("posters")
	assert.ElementsMatch(t, []string{"nested", "posters"}, env.ListFiles("."))
}

func TestGoldenHelper(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFileString("golden/list.golden", "Iron Man (2008)\n")
	env.WriteFileString("golden/list.json", `{"a": 1, "b": [2]}`)

	golden := NewGoldenHelper(t, env.Path("golden"))
	require.False(t, golden.update)
	golden.AssertGoldenString("list.golden", "Iron Man (2008)\n")
	golden.AssertGoldenJSON("list.json", []byte(`{"b":[2],"a":1}`))
}

func TestResetConfigRestoresGlobals(t *testing.T) {
	config.DefaultSearch = "Marvel"
	config.SessionTTL = 24 * time.Hour

	t.Run("inner", func(t *testing.T) {
		ResetConfig(t)
		config.DefaultSearch = "Alien"
		config.SessionTTL = time.Minute
	})

	assert.Equal(t, "Marvel", config.DefaultSearch)
	assert.Equal(t, 24*time.Hour, config.SessionTTL)
}

func TestSetTestConfig(t *testing.T) {
	env := NewTestEnv(t)
	SetTestConfig(t, env, "http://127.0.0.1:9999")

	assert.Equal(t, "test-omdb-key", config.OMDBAPIKey)
	assert.Equal(t, "http://127.0.0.1:9999", config.OMDBBaseURL)
	assert.Zero(t, config.OMDBRequestsPerSecond)
	assert.Equal(t, env.Path("posters"), config.PosterDir)
	assert.Equal(t, env.Path("marquee-test.db"), config.StorageOptions().SQLitePath)
}

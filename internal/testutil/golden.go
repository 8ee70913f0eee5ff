package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenHelper compares command output with files under a testdata
// directory. With UPDATE_GOLDEN=true it rewrites the files instead.
type GoldenHelper struct {
	t      *testing.T
	dir    string
	update bool
}

func NewGoldenHelper(t *testing.T, dir string) *GoldenHelper {
	t.Helper()
	return &GoldenHelper{t: t, dir: dir, update: os.Getenv("UPDATE_GOLDEN") == "true"}
}

// AssertGoldenString compares actual byte for byte with the golden file.
func (g *GoldenHelper) AssertGoldenString(name, actual string) {
	g.t.Helper()
	if g.update {
		g.write(name, []byte(actual))
		return
	}
	assert.Equal(g.t, string(g.read(name)), actual, "golden file %s", name)
}

// AssertGoldenJSON compares actual with the golden file as JSON, so
// indentation and key order do not matter.
func (g *GoldenHelper) AssertGoldenJSON(name string, actual []byte) {
	g.t.Helper()
	if g.update {
		g.write(name, actual)
		return
	}
	assert.JSONEq(g.t, string(g.read(name)), string(actual), "golden file %s", name)
}

func (g *GoldenHelper) read(name string) []byte {
	g.t.Helper()
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	require.NoError(g.t, err, "read golden file %s", name)
	return data
}

func (g *GoldenHelper) write(name string, data []byte) {
	g.t.Helper()
	path := filepath.Join(g.dir, name)
	require.NoError(g.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(g.t, os.WriteFile(path, data, 0o644))
	g.t.Logf("updated golden file %s", path)
}

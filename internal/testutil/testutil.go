// Package testutil provides sandboxed filesystem and config helpers for marquee tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv is a per-test temporary directory. Every path handed to it is
// resolved inside that directory and the test fails if one escapes.
type TestEnv struct {
	t    *testing.T
	root string
}

// NewTestEnv creates a TestEnv rooted at t.TempDir().
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{t: t, root: t.TempDir()}
}

// Path joins elem under the sandbox root and returns the absolute path.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	p := filepath.Clean(filepath.Join(e.root, filepath.Join(elem...)))
	if !e.contains(p) {
		e.t.Fatalf("path %q is outside the test directory %q", p, e.root)
	}
	return p
}

func (e *TestEnv) contains(p string) bool {
	root := filepath.Clean(e.root)
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// WriteFileString writes content to path, creating parent directories.
func (e *TestEnv) WriteFileString(path, content string) {
	e.t.Helper()

	p := e.Path(path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		e.t.Fatalf("mkdir %q: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		e.t.Fatalf("write %q: %v", p, err)
	}
}

func (e *TestEnv) ReadFile(path string) []byte {
	e.t.Helper()

	data, err := os.ReadFile(e.Path(path))
	if err != nil {
		e.t.Fatalf("read %q: %v", path, err)
	}
	return data
}

func (e *TestEnv) ReadFileString(path string) string {
	e.t.Helper()
	return string(e.ReadFile(path))
}

func (e *TestEnv) MkdirAll(path string) {
	e.t.Helper()
	if err := os.MkdirAll(e.Path(path), 0o755); err != nil {
		e.t.Fatalf("mkdir %q: %v", path, err)
	}
}

func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()
	_, err := os.Stat(e.Path(path))
	return err == nil
}

// RequireFileExists fails the test unless path exists.
func (e *TestEnv) RequireFileExists(path string) {
	e.t.Helper()
	if !e.FileExists(path) {
		e.t.Fatalf("expected %q to exist", path)
	}
}

// ListFiles returns the entry names of the directory at path.
func (e *TestEnv) ListFiles(path string) []string {
	e.t.Helper()

	entries, err := os.ReadDir(e.Path(path))
	if err != nil {
		e.t.Fatalf("read dir %q: %v", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

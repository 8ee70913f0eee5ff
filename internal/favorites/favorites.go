// Package favorites keeps the user's favorite titles and persists them as a
// JSON blob in the key-value store.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/storage"
)

// StorageKey is the key the favorites blob is stored under.
const StorageKey = "favorites-storage"

// persisted mirrors the {"state": {...}, "version": N} blob layout so data
// written by earlier versions of the app still loads.
type persisted struct {
	State struct {
		Favorites []omdb.MovieSummary `json:"favorites"`
	} `json:"state"`
	Version int `json:"version"`
}

// Store is a set of favorite titles keyed by ID, kept in insertion order.
// Writes go to memory first; persisting is best effort and a failed write
// is logged without undoing the change.
type Store struct {
	kv storage.KV

	mu        sync.RWMutex
	favorites []omdb.MovieSummary
}

// NewStore creates an empty store backed by kv. Call Load to read persisted favorites.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory list with the persisted one.
// A bare JSON array is accepted as well as the wrapped layout.
func (s *Store) Load(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read favorites: %w", err)
	}

	var list []omdb.MovieSummary
	if found && raw != "" {
		list, err = decode(raw)
		if err != nil {
			return fmt.Errorf("failed to decode favorites: %w", err)
		}
	}

	s.mu.Lock()
	s.favorites = dedupe(list)
	s.mu.Unlock()

	slog.Debug("Loaded favorites", "count", len(list))
	return nil
}

func decode(raw string) ([]omdb.MovieSummary, error) {
	var blob persisted
	if err := json.Unmarshal([]byte(raw), &blob); err == nil {
		return blob.State.Favorites, nil
	}
	var list []omdb.MovieSummary
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func dedupe(list []omdb.MovieSummary) []omdb.MovieSummary {
	seen := make(map[string]bool, len(list))
	out := make([]omdb.MovieSummary, 0, len(list))
	for _, m := range list {
		if m.ID == "" || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

// Add stores m unless a favorite with the same ID exists. It reports whether m was added.
func (s *Store) Add(ctx context.Context, m omdb.MovieSummary) bool {
	if m.ID == "" {
		return false
	}

	s.mu.Lock()
	if s.indexLocked(m.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.favorites = append(s.favorites, m)
	snapshot := slices.Clone(s.favorites)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// Remove deletes the favorite with id. It reports whether anything was removed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	snapshot := slices.Clone(s.favorites)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return true
}

// Toggle adds m when it is not a favorite and removes it otherwise.
// It reports whether m is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, m omdb.MovieSummary) bool {
	if s.Remove(ctx, m.ID) {
		return false
	}
	return s.Add(ctx, m)
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []omdb.MovieSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorites)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.favorites, func(m omdb.MovieSummary) bool { return m.ID == id })
}

func (s *Store) persist(ctx context.Context, list []omdb.MovieSummary) {
	var blob persisted
	blob.State.Favorites = list
	if blob.State.Favorites == nil {
		blob.State.Favorites = []omdb.MovieSummary{}
	}

	data, err := json.Marshal(blob)
	if err != nil {
		slog.Error("Failed to encode favorites", "error", err)
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		slog.Error("Failed to persist favorites", "count", len(list), "error", err)
	}
}

// Package storage provides the key-value capability used to persist the
// session token and the favorites list.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// KV is the narrow persistence capability the stores depend on.
// Get reports found=false for a missing key without an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a storage backend.
type Options struct {
	Backend       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Store is a KV that owns a connection and must be closed.
type Store interface {
	KV
	Close() error
}

// Open creates the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = "./marquee.db"
		}
		return NewSQLiteStore(path)
	case BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: sqlite, redis, memory)", opts.Backend)
	}
}

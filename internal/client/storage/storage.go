// Package storage provides the durable key/value storage that backs the token
// store and the language preference. Three backends exist: SQLite (default,
// a local file), Redis (shared between several client processes) and memory.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Store is a string key/value store. Update applies all of its changes
// atomically: readers observe either none or all of them.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Update(ctx context.Context, c Change) error
	Close() error
}

// Change is a batch of writes applied by Store.Update.
type Change struct {
	Set    map[string]string
	Delete []string
}

func (c Change) empty() bool {
	return len(c.Set) == 0 && len(c.Delete) == 0
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// Open returns the backend named by o.Backend.
func Open(ctx context.Context, o Options) (Store, error) {
	switch o.Backend {
	case BackendSQLite, "":
		return OpenSQLite(ctx, o.Path)
	case BackendRedis:
		return OpenRedis(ctx, o.RedisAddr, o.RedisPrefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
}

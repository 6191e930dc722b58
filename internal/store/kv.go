// Package store persists learner profiles behind a small key-value
// contract with SQLite, Redis and in-memory backends.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get when the key does not exist.
var ErrNotFound = errors.New("store: key not found")

// KV is the persistence contract the profile store is written against.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend is a KV that holds resources which must be released.
type Backend interface {
	KV
	Close() error
}

// Open creates the backend selected by cfg.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendRedis:
		return OpenRedis(ctx, cfg)
	default:
		path := cfg.SQLitePath
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve database path: %w", err)
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		return OpenSQLite(ctx, path)
	}
}

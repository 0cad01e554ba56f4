// Package kvstore is the gateway's persistence port for opaque client state:
// sessions, timer state, cached configuration snapshots and geocode results.
// Call sites only see Store and typed keys, so the backend (memory, Redis,
// Postgres) is chosen at wiring time.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key binds a storage key to the Go type stored under it.
type Key[T any] struct {
	name string
}

func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

func (k Key[T]) String() string {
	return k.name
}

// Load decodes the value stored under key. Missing keys return ErrNotFound.
func Load[T any](ctx context.Context, s Store, key Key[T]) (T, error) {
	var zero T
	raw, err := s.Get(ctx, key.name)
	if err != nil {
		return zero, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("kvstore: decode %s: %w", key.name, err)
	}
	return v, nil
}

func Save[T any](ctx context.Context, s Store, key Key[T], v T, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: encode %s: %w", key.name, err)
	}
	return s.Set(ctx, key.name, raw, ttl)
}

func Clear[T any](ctx context.Context, s Store, key Key[T]) error {
	return s.Delete(ctx, key.name)
}

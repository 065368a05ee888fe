package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by backends when a key has no value
var ErrNotFound = errors.New("storage: key not found")

// Backend stores raw JSON payloads under string keys
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ClearableBackend can delete every entry it owns
type ClearableBackend interface {
	Backend
	Clear(ctx context.Context) error
}

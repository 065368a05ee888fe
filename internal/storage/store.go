// Package storage wraps durable and session-scoped key-value backends with
// JSON encoding and total failure containment: no operation returns an
// error or panics, failures are logged and reported as a false result.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/pep299/socialspy/internal/metrics"
)

// Store is the JSON key-value helper shared by both scopes
type Store struct {
	name    string
	backend Backend
}

// Durable is the long-lived store; only it can be cleared
type Durable struct {
	*Store
	clearable ClearableBackend
}

// NewDurable creates the durable store over backend
func NewDurable(backend ClearableBackend) *Durable {
	return &Durable{
		Store:     &Store{name: "durable", backend: backend},
		clearable: backend,
	}
}

// NewSession creates a session-scoped store over backend
func NewSession(backend Backend) *Store {
	return &Store{name: "session", backend: backend}
}

// Get returns the raw JSON stored under key. Missing keys, backend
// failures and payloads that are not valid JSON all report false.
func (s *Store) Get(ctx context.Context, key string) (value json.RawMessage, ok bool) {
	defer s.contain("reading", key, func() { value, ok = nil, false })

	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.fail("reading", key, err)
		}
		return nil, false
	}

	if !json.Valid(data) {
		s.fail("reading", key, fmt.Errorf("malformed JSON payload"))
		return nil, false
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, false
	}

	return json.RawMessage(data), true
}

// GetInto decodes the value stored under key into dst
func (s *Store) GetInto(ctx context.Context, key string, dst interface{}) (ok bool) {
	defer s.contain("reading", key, func() { ok = false })

	raw, found := s.Get(ctx, key)
	if !found {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.fail("reading", key, err)
		return false
	}
	return true
}

// Get decodes the value stored under key as T
func Get[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var value T
	if !s.GetInto(ctx, key, &value) {
		var zero T
		return zero, false
	}
	return value, true
}

// Set encodes value as JSON and stores it under key
func (s *Store) Set(ctx context.Context, key string, value interface{}) (ok bool) {
	defer s.contain("writing", key, func() { ok = false })

	data, err := json.Marshal(value)
	if err != nil {
		s.fail("writing", key, err)
		return false
	}

	if err := s.backend.Set(ctx, key, data); err != nil {
		s.fail("writing", key, err)
		return false
	}
	return true
}

// Remove deletes the entry under key
func (s *Store) Remove(ctx context.Context, key string) (ok bool) {
	defer s.contain("removing", key, func() { ok = false })

	if err := s.backend.Delete(ctx, key); err != nil {
		s.fail("removing", key, err)
		return false
	}
	return true
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Clear deletes every entry in the durable store
func (d *Durable) Clear(ctx context.Context) (ok bool) {
	defer d.contain("clearing", "*", func() { ok = false })

	if err := d.clearable.Clear(ctx); err != nil {
		d.fail("clearing", "*", err)
		return false
	}
	return true
}

func (s *Store) fail(op, key string, err error) {
	metrics.StorageErrorsTotal.WithLabelValues(s.name, op).Inc()
	log.Printf("Error %s %s storage key %q: %v", op, s.name, key, err)
}

// contain turns a panic into a logged failure and runs reset
func (s *Store) contain(op, key string, reset func()) {
	if rec := recover(); rec != nil {
		s.fail(op, key, fmt.Errorf("panic: %v", rec))
		reset()
	}
}

package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryBackend implements an in-process backend. A zero ttl keeps
// entries until they are removed.
type MemoryBackend struct {
	entries     map[string]memoryEntry
	mutex       sync.RWMutex
	ttl         time.Duration
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewMemoryBackend creates a new in-memory backend
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	backend := &MemoryBackend{
		entries:     make(map[string]memoryEntry),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	if ttl > 0 {
		go backend.cleanup()
	}

	return backend
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	entry, exists := m.entries[key]
	m.mutex.RUnlock()

	if !exists || entry.expired(time.Now()) {
		return nil, ErrNotFound
	}

	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, nil
}

func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry := memoryEntry{data: make([]byte, len(value))}
	copy(entry.data, value)
	if m.ttl > 0 {
		entry.expiresAt = time.Now().Add(m.ttl)
	}

	m.entries[key] = entry
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.entries, key)
	return nil
}

// Clear removes all entries
func (m *MemoryBackend) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries = make(map[string]memoryEntry)
	return nil
}

// Len returns the number of live entries
func (m *MemoryBackend) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	now := time.Now()
	count := 0
	for _, entry := range m.entries {
		if !entry.expired(now) {
			count++
		}
	}
	return count
}

// Close stops the cleanup goroutine
func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() {
		close(m.stopCleanup)
	})
	return nil
}

// cleanup removes expired entries periodically
func (m *MemoryBackend) cleanup() {
	interval := m.ttl
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

// cleanupExpired removes expired entries
func (m *MemoryBackend) cleanupExpired() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
		}
	}
}

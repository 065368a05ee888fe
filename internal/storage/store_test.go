package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pep299/socialspy/internal/metrics"
)

type preferences struct {
	Subreddit string `json:"subreddit"`
	Limit     int    `json:"limit"`
}

// failingBackend fails every operation
type failingBackend struct{}

var errQuota = errors.New("quota exceeded")

func (failingBackend) Get(ctx context.Context, key string) ([]byte, error) { return nil, errQuota }
func (failingBackend) Set(ctx context.Context, key string, value []byte) error {
	return errQuota
}
func (failingBackend) Delete(ctx context.Context, key string) error { return errQuota }
func (failingBackend) Clear(ctx context.Context) error              { return errQuota }
func (failingBackend) Close() error                                 { return nil }

// panicMarshaler panics while being encoded
type panicMarshaler struct{}

func (panicMarshaler) MarshalJSON() ([]byte, error) {
	panic("boom")
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDurable(NewMemoryBackend(0))
	defer store.Close()

	require.True(t, store.Set(ctx, "prefs", preferences{Subreddit: "golang", Limit: 10}))

	got, ok := Get[preferences](ctx, store.Store, "prefs")
	require.True(t, ok)
	assert.Equal(t, preferences{Subreddit: "golang", Limit: 10}, got)

	raw, ok := store.Get(ctx, "prefs")
	require.True(t, ok)
	assert.JSONEq(t, `{"subreddit":"golang","limit":10}`, string(raw))
}

func TestStoreGetMissing(t *testing.T) {
	store := NewSession(NewMemoryBackend(0))

	raw, ok := store.Get(context.Background(), "nope")
	assert.False(t, ok)
	assert.Nil(t, raw)

	_, ok = Get[preferences](context.Background(), store, "nope")
	assert.False(t, ok)
}

func TestStoreGetMalformedJSON(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(0)
	require.NoError(t, backend.Set(ctx, "broken", []byte("{not json")))

	store := NewSession(backend)

	assert.NotPanics(t, func() {
		raw, ok := store.Get(ctx, "broken")
		assert.False(t, ok)
		assert.Nil(t, raw)
	})

	var dst preferences
	assert.False(t, store.GetInto(ctx, "broken", &dst))
}

func TestStoreGetStoredNull(t *testing.T) {
	ctx := context.Background()
	store := NewSession(NewMemoryBackend(0))

	require.True(t, store.Set(ctx, "empty", nil))

	_, ok := store.Get(ctx, "empty")
	assert.False(t, ok)
}

func TestStoreGetTypeMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewSession(NewMemoryBackend(0))
	require.True(t, store.Set(ctx, "count", "not-a-number"))

	n, ok := Get[int](ctx, store, "count")
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewSession(NewMemoryBackend(0))

	require.True(t, store.Set(ctx, "draft", "https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, store.Remove(ctx, "draft"))

	_, ok := store.Get(ctx, "draft")
	assert.False(t, ok)

	assert.True(t, store.Remove(ctx, "draft"), "removing a missing key is not a failure")
}

func TestDurableClear(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(0)
	store := NewDurable(backend)

	require.True(t, store.Set(ctx, "a", 1))
	require.True(t, store.Set(ctx, "b", 2))
	require.Equal(t, 2, backend.Len())

	assert.True(t, store.Clear(ctx))
	assert.Equal(t, 0, backend.Len())
}

func TestStoreFailureContainment(t *testing.T) {
	ctx := context.Background()
	store := NewDurable(failingBackend{})

	assert.NotPanics(t, func() {
		_, ok := store.Get(ctx, "k")
		assert.False(t, ok)
		assert.False(t, store.Set(ctx, "k", "v"))
		assert.False(t, store.Remove(ctx, "k"))
		assert.False(t, store.Clear(ctx))
	})
}

func TestStoreSerializationFailure(t *testing.T) {
	ctx := context.Background()
	store := NewSession(NewMemoryBackend(0))

	assert.NotPanics(t, func() {
		assert.False(t, store.Set(ctx, "chan", make(chan int)))
	})
	assert.NotPanics(t, func() {
		assert.False(t, store.Set(ctx, "panic", panicMarshaler{}))
	})

	_, ok := store.Get(ctx, "chan")
	assert.False(t, ok)
}

func TestStoreFailuresCounted(t *testing.T) {
	ctx := context.Background()
	count := func(store, op string) float64 {
		return testutil.ToFloat64(metrics.StorageErrorsTotal.WithLabelValues(store, op))
	}
	reads := count("durable", "reading")
	writes := count("durable", "writing")
	removes := count("durable", "removing")
	clears := count("durable", "clearing")
	sessionWrites := count("session", "writing")
	sessionReads := count("session", "reading")

	durable := NewDurable(failingBackend{})
	durable.Get(ctx, "k")
	durable.Set(ctx, "k", "v")
	durable.Remove(ctx, "k")
	durable.Clear(ctx)

	session := NewSession(NewMemoryBackend(0))
	defer session.Close()
	session.Set(ctx, "panic", panicMarshaler{})
	session.Get(ctx, "missing")

	assert.Equal(t, float64(1), count("durable", "reading")-reads)
	assert.Equal(t, float64(1), count("durable", "writing")-writes)
	assert.Equal(t, float64(1), count("durable", "removing")-removes)
	assert.Equal(t, float64(1), count("durable", "clearing")-clears)
	assert.Equal(t, float64(1), count("session", "writing")-sessionWrites)
	// A missing key is not a failure
	assert.Equal(t, float64(0), count("session", "reading")-sessionReads)
}

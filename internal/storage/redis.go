package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps session-scoped entries in Redis. Keys are namespaced
// by session and expire after ttl; every write refreshes the expiry.
type RedisBackend struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	ownClient bool
}

// NewRedisBackend connects to addr and scopes keys to sessionID
func NewRedisBackend(ctx context.Context, addr string, db int, sessionID string, ttl time.Duration) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	backend := NewRedisBackendWithClient(client, sessionID, ttl)
	backend.ownClient = true
	return backend, nil
}

// NewRedisBackendWithClient scopes an existing client to sessionID
func NewRedisBackendWithClient(client *redis.Client, sessionID string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{
		client:    client,
		namespace: "session:" + sessionID + ":",
		ttl:       ttl,
	}
}

func (r *RedisBackend) key(key string) string {
	return r.namespace + key
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the client if the backend created it
func (r *RedisBackend) Close() error {
	if r.ownClient {
		return r.client.Close()
	}
	return nil
}

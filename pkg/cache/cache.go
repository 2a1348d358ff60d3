// Package cache provides a small generic key-value cache with TTL support,
// backed either by process memory or by Redis.
//
// The shell uses the memory backend to keep one render-failure boundary per
// browser client and the Redis backend to read sessions shared with the auth
// service.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: item never expires
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Marshaler serializes cache values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Loader computes a value on a cache miss together with its TTL.
type Loader[V any] func(ctx context.Context) (V, time.Duration, error)

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// Group deduplicates concurrent misses on the same key, so a value is
// computed once even when many requests miss at the same time.
type Group[V any] struct {
	cache Cache[V]
	sf    singleflight.Group
}

// NewGroup wraps c with miss deduplication.
func NewGroup[V any](c Cache[V]) *Group[V] {
	return &Group[V]{cache: c}
}

// GetOrSet returns the cached value for key or computes it with load.
// Errors from load are returned and nothing is cached.
func (g *Group[V]) GetOrSet(ctx context.Context, key string, load Loader[V]) (V, error) {
	if v, err := g.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := g.sf.Do(key, func() (any, error) {
		// A concurrent call may have filled the key while we waited.
		if v, err := g.cache.Get(ctx, key); err == nil {
			return loaded[V]{val: v}, nil
		}
		val, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := g.cache.Set(ctx, key, val, ttl); err != nil {
			return nil, err
		}
		return loaded[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).val, nil
}

// Cache returns the wrapped cache.
func (g *Group[V]) Cache() Cache[V] {
	return g.cache
}

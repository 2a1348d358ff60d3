package session

import (
	"context"
	"errors"

	"github.com/autoresum/autoresum-web/pkg/cache"
)

// CacheStore keeps sessions in a cache keyed by token. Entries are written
// with the session's remaining TTL, so the cache drops them on expiry.
//
// Backed by cache.Redis it reads the sessions written by the auth service;
// backed by cache.Memory it serves single-instance setups and tests.
type CacheStore struct {
	cache cache.Cache[*Session]
}

// NewCacheStore creates a store on top of c.
func NewCacheStore(c cache.Cache[*Session]) *CacheStore {
	return &CacheStore{cache: c}
}

// Create stores s under its token.
func (s *CacheStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidToken
	}
	ttl := sess.TTL()
	if ttl <= 0 {
		return ErrExpired
	}
	return s.cache.Set(ctx, sess.Token, sess, ttl)
}

// Get loads the session for token.
func (s *CacheStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	sess, err := s.cache.Get(ctx, token)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return sess, nil
}

// Delete removes the session for token.
func (s *CacheStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	return s.cache.Delete(ctx, token)
}

var _ Store = (*CacheStore)(nil)

// Package session holds the session model shared with the auth service and
// the stores the web shell reads it from.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a visitor session.
type Session struct {
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	UserID    *string        `json:"user_id,omitempty"` // nil = anonymous session
	Values    map[string]any `json:"values,omitempty"`
	ID        string         `json:"id"`
	Token     string         `json:"token"` // cookie token, distinct from ID
}

// New creates an anonymous session with a fresh ID that expires after ttl.
func New(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Values:    make(map[string]any),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsAuthenticated returns true if the session has an associated user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != nil && *s.UserID != ""
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the time left until expiry, or zero if already expired.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

// GetValue retrieves a value from the session.
func (s *Session) GetValue(key string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	val, ok := s.Values[key]
	return val, ok
}

// ValueOr returns the typed value for key, or defaultVal if it is missing or
// has a different type.
func ValueOr[T any](s *Session, key string, defaultVal T) T {
	if s == nil {
		return defaultVal
	}
	val, ok := s.GetValue(key)
	if !ok {
		return defaultVal
	}
	typed, ok := val.(T)
	if !ok {
		return defaultVal
	}
	return typed
}

package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/autoresum/autoresum-web/pkg/logger"
	"github.com/autoresum/autoresum-web/pkg/session"
)

const defaultSessionCookieName = "__sid"

// SessionManager resolves the visitor's session from the session cookie.
// Issuing sessions belongs to the auth service; the shell only reads them.
type SessionManager struct {
	store      session.Store
	logger     *slog.Logger
	cookieName string
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a SessionManager backed by store.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:      store,
		logger:     logger.NewNope(),
		cookieName: defaultSessionCookieName,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// WithSessionCookieName sets the session cookie name.
// Defaults to "__sid".
func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// SetLogger sets the logger for session events. Called by App after options run.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// LoadSession loads the session referenced by the request cookie.
// A missing cookie, an unknown token or an expired session all yield nil, nil:
// the visitor is simply anonymous. Store failures are returned.
func (sm *SessionManager) LoadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	ck, err := r.Cookie(sm.cookieName)
	if err != nil || ck.Value == "" {
		return nil, nil
	}

	sess, err := sm.store.Get(ctx, ck.Value)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		sm.logger.DebugContext(ctx, "session cookie ignored", slog.String("reason", err.Error()))
		return nil, nil
	case err != nil:
		return nil, err
	}

	if sess.IsExpired() {
		return nil, nil
	}
	return sess, nil
}

// Store returns the underlying session store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

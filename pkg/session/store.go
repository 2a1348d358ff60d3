package session

import "context"

// Store defines session persistence.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get retrieves a session by its token.
	// Returns ErrNotFound if the session doesn't exist and ErrExpired if it has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by its token.
	Delete(ctx context.Context, token string) error
}

package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/autoresum/autoresum-web/internal"
	"github.com/autoresum/autoresum-web/pkg/logger"
	"github.com/autoresum/autoresum-web/pkg/notify"
)

const (
	// DefaultClientCookie holds the browser's client key.
	DefaultClientCookie = "__bid"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientKeyOption configures ClientKey.
type ClientKeyOption func(*clientKeyConfig)

type clientKeyConfig struct {
	cookie string
}

// WithClientCookie sets the cookie name. Defaults to "__bid".
func WithClientCookie(name string) ClientKeyOption {
	return func(c *clientKeyConfig) {
		if name != "" {
			c.cookie = name
		}
	}
}

// ClientKey reads the client key from its cookie, issuing a new random key
// when the cookie is missing or malformed. The key is stored as the
// notification recipient of the request.
func ClientKey(opts ...ClientKeyOption) internal.Middleware {
	cfg := &clientKeyConfig{cookie: DefaultClientCookie}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key, err := c.Cookie(cfg.cookie)
			if err != nil || uuid.Validate(key) != nil {
				key = uuid.NewString()
				c.SetCookie(cfg.cookie, key, clientCookieMaxAge)
			}
			c.Set(notify.RecipientKey{}, key)
			return next(c)
		}
	}
}

// GetClientKey returns the client key stored in ctx, or "".
func GetClientKey(ctx context.Context) string {
	return notify.RecipientFrom(ctx)
}

// ClientKeyExtractor adds client_key to log records.
func ClientKeyExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetClientKey(ctx); v != "" {
			return slog.String("client_key", v), true
		}
		return slog.Attr{}, false
	}
}

package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

// DefaultHeartbeat is how often an idle stream sends a keep-alive comment.
const DefaultHeartbeat = 25 * time.Second

// StreamOption configures StreamHandler.
type StreamOption func(*streamConfig)

type streamConfig struct {
	logger    *slog.Logger
	recipient func(*http.Request) string
	heartbeat time.Duration
}

// WithStreamLogger sets the stream logger.
func WithStreamLogger(l *slog.Logger) StreamOption {
	return func(c *streamConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHeartbeat sets the keep-alive interval.
func WithHeartbeat(d time.Duration) StreamOption {
	return func(c *streamConfig) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// WithRecipientFunc overrides how the recipient is read from the request.
// Defaults to RecipientFrom on the request context.
func WithRecipientFunc(fn func(*http.Request) string) StreamOption {
	return func(c *streamConfig) {
		if fn != nil {
			c.recipient = fn
		}
	}
}

// StreamHandler streams the requesting client's messages as server-sent
// events named "toast" until the client disconnects.
func StreamHandler(b *Broker, opts ...StreamOption) http.HandlerFunc {
	cfg := &streamConfig{
		logger:    logger.NewNope(),
		heartbeat: DefaultHeartbeat,
		recipient: func(r *http.Request) string { return RecipientFrom(r.Context()) },
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		recipient := cfg.recipient(r)
		if recipient == "" {
			http.Error(w, "missing client key", http.StatusBadRequest)
			return
		}

		rc := http.NewResponseController(w)
		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			cfg.logger.WarnContext(r.Context(), "notification stream cannot flush", slog.Any("error", err))
			return
		}

		sub := b.Subscribe(recipient)
		defer sub.Close()

		ticker := time.NewTicker(cfg.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			case msg, ok := <-sub.C():
				if !ok {
					return
				}
				data, err := json.Marshal(msg)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(w, "id: %s\nevent: toast\ndata: %s\n\n", msg.ID, data); err != nil {
					return
				}
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

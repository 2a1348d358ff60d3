// Package notify delivers transient toast messages to browser clients.
//
// A Notifier publishes messages addressed to the recipient found in the
// request context. Messages travel through a Publisher: the in-process
// Broker for a single instance, or a RedisBus when several instances share
// clients. StreamHandler pushes a client's messages to the browser as
// server-sent events.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

// ErrNoRecipient is returned when a message has no recipient.
var ErrNoRecipient = errors.New("notify: no recipient")

// Level is the toast style.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one toast addressed to one client.
type Message struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Level     Level     `json:"level"`
	Text      string    `json:"text"`
}

// Publisher moves a message towards its recipient.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// RecipientKey is the context key holding the recipient of messages sent
// with that context. The value is a string.
type RecipientKey struct{}

// WithRecipient stores the client key messages in ctx are addressed to.
func WithRecipient(ctx context.Context, recipient string) context.Context {
	return context.WithValue(ctx, RecipientKey{}, recipient)
}

// RecipientFrom returns the client key stored under RecipientKey.
func RecipientFrom(ctx context.Context) string {
	r, _ := ctx.Value(RecipientKey{}).(string)
	return r
}

// Notifier sends toasts to the current request's client. Delivery is fire
// and forget: failures are logged, never returned.
type Notifier struct {
	pub    Publisher
	logger *slog.Logger
}

// NewNotifier creates a notifier publishing through pub.
func NewNotifier(pub Publisher, log *slog.Logger) *Notifier {
	if log == nil {
		log = logger.NewNope()
	}
	return &Notifier{pub: pub, logger: log}
}

// Error sends an error toast.
func (n *Notifier) Error(ctx context.Context, text string) {
	n.send(ctx, LevelError, text)
}

// Info sends an informational toast.
func (n *Notifier) Info(ctx context.Context, text string) {
	n.send(ctx, LevelInfo, text)
}

// Success sends a success toast.
func (n *Notifier) Success(ctx context.Context, text string) {
	n.send(ctx, LevelSuccess, text)
}

func (n *Notifier) send(ctx context.Context, level Level, text string) {
	msg := Message{
		ID:        uuid.NewString(),
		Recipient: RecipientFrom(ctx),
		Level:     level,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if msg.Recipient == "" {
		n.logger.DebugContext(ctx, "notification dropped", slog.String("reason", ErrNoRecipient.Error()))
		return
	}

	// A cancelled request must not stop the toast from going out.
	if err := n.pub.Publish(context.WithoutCancel(ctx), msg); err != nil {
		n.logger.WarnContext(ctx, "failed to publish notification",
			slog.String("level", string(level)),
			slog.Any("error", err),
		)
	}
}

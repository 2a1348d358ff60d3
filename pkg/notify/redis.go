package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

// DefaultChannel is the Redis pub/sub channel used when none is configured.
const DefaultChannel = "autoresum:notifications"

// RedisBus carries messages between instances over Redis pub/sub, so a
// toast raised on one instance reaches a client streaming from another.
type RedisBus struct {
	client  redis.UniversalClient
	logger  *slog.Logger
	channel string
}

// NewRedisBus creates a bus on channel, or DefaultChannel when empty.
func NewRedisBus(client redis.UniversalClient, channel string, log *slog.Logger) *RedisBus {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = logger.NewNope()
	}
	return &RedisBus{client: client, channel: channel, logger: log}
}

// Publish sends msg to every instance.
func (b *RedisBus) Publish(ctx context.Context, msg Message) error {
	if msg.Recipient == "" {
		return ErrNoRecipient
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, raw).Err()
}

// Forward subscribes to the channel and passes each message to deliver until
// ctx is cancelled. It returns once the subscription is confirmed; delivery
// continues in the background.
func (b *RedisBus) Forward(ctx context.Context, deliver func(Message)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return errors.Join(errors.New("notify: redis subscribe failed"), err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.logger.WarnContext(ctx, "bad notification payload", slog.Any("error", err))
					continue
				}
				deliver(msg)
			}
		}
	}()

	b.logger.InfoContext(ctx, "notification bus forwarding", slog.String("channel", b.channel))
	return nil
}

//go:build integration

package notify_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/notify"
	"github.com/autoresum/autoresum-web/pkg/redis"
)

func TestRedisBus(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.Open(ctx, redis.Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	bus := notify.NewRedisBus(client, "notify-it", nil)
	broker := notify.NewBroker()
	sub := broker.Subscribe("client-1")
	defer sub.Close()

	require.NoError(t, bus.Forward(ctx, broker.Deliver))
	require.NoError(t, bus.Publish(ctx, notify.Message{Recipient: "client-1", Text: "from another instance"}))

	select {
	case msg := <-sub.C():
		require.Equal(t, "from another instance", msg.Text)
	case <-ctx.Done():
		t.Fatal("message not forwarded")
	}
}

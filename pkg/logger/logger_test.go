package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

type ctxKey struct{}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes json with extracted attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: slog.LevelInfo}, requestIDExtractor)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.InfoContext(ctx, "page rendered", slog.String("path", "/pricing"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "page rendered", rec["msg"])
		require.Equal(t, "req-1", rec["request_id"])
		require.Equal(t, "/pricing", rec["path"])
	})

	t.Run("skips attribute when extractor declines", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf}, requestIDExtractor, nil)

		log.Info("no request")
		require.NotContains(t, buf.String(), "request_id")
	})

	t.Run("text handler in development", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Text: true})

		log.Info("hello", slog.Int("n", 1))
		require.True(t, strings.Contains(buf.String(), "msg=hello"))
		require.Contains(t, buf.String(), "n=1")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Level: slog.LevelWarn})

		log.Info("dropped")
		require.Empty(t, buf.String())
		log.Warn("kept")
		require.Contains(t, buf.String(), "kept")
	})
}

func TestFanout(t *testing.T) {
	t.Parallel()

	var infoBuf, errBuf bytes.Buffer
	h := logger.Fanout(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h).With(slog.String("svc", "web"))

	log.Info("info")
	log.Error("error")

	require.Equal(t, 2, strings.Count(infoBuf.String(), "\n"))
	require.Equal(t, 1, strings.Count(errBuf.String(), "\n"))
	require.Contains(t, errBuf.String(), `"svc":"web"`)
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}

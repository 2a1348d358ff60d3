package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/internal/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Env)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "/login", cfg.LoginPath)
	require.Equal(t, "__sid", cfg.SessionCookie)
	require.Equal(t, "__bid", cfg.ClientCookie)
	require.True(t, cfg.SessionSecure)
	require.Equal(t, "autoresum:notifications", cfg.NotifyChannel)
	require.Equal(t, slog.LevelInfo, cfg.Log.Level)
	require.False(t, cfg.Log.Text)
	require.False(t, cfg.RedisEnabled())
	require.Equal(t, 3, cfg.Redis.RetryAttempts)
	require.Equal(t, 2*time.Second, cfg.Redis.RetryInterval)
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{
		"APP_ENV":        "development",
		"HTTP_ADDR":      "127.0.0.1:3000",
		"LOG_LEVEL":      "debug",
		"REDIS_URL":      "redis://localhost:6379/0",
		"SESSION_SECURE": "false",
		"SENTRY_DSN":     "https://key@sentry.example.com/1",
		"THEME_FILE":     "/etc/autoresum/theme.yaml",
	})
	require.NoError(t, err)

	require.True(t, cfg.IsDevelopment())
	require.True(t, cfg.Log.Text, "development forces the text handler")
	require.Equal(t, slog.LevelDebug, cfg.Log.Level)
	require.Equal(t, "127.0.0.1:3000", cfg.HTTPAddr)
	require.True(t, cfg.RedisEnabled())
	require.False(t, cfg.SessionSecure)
	require.Equal(t, "https://key@sentry.example.com/1", cfg.Log.Sentry.DSN)
	require.Equal(t, "/etc/autoresum/theme.yaml", cfg.ThemeFile)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "login path without slash", env: map[string]string{"LOGIN_PATH": "login"}},
		{name: "same cookie names", env: map[string]string{"SESSION_COOKIE": "sid", "CLIENT_COOKIE": "sid"}},
		{name: "unparsable bool", env: map[string]string{"SESSION_SECURE": "maybe"}},
		{name: "unparsable duration", env: map[string]string{"REDIS_RETRY_INTERVAL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFrom(tt.env)
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

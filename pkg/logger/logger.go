// Package logger builds the application's slog.Logger: JSON in production,
// text in development, with request-scoped attributes pulled from context and
// optional forwarding of warnings and errors to Sentry.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config controls logger construction.
type Config struct {
	Output io.Writer  `env:"-"`
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	// Text selects the human readable handler instead of JSON.
	Text   bool `env:"LOG_TEXT" envDefault:"false"`
	Sentry SentryConfig
}

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel is the lowest level stored as a Sentry log entry.
	// Errors always create issues.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// ContextExtractor pulls one attribute out of a request context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates a logger from cfg. Extractors run on every record.
//
// When cfg.Sentry.DSN is set, the Sentry SDK is initialised and records at
// or above cfg.Sentry.MinLevel are mirrored to it. A failed Sentry init is
// logged and the logger falls back to local output only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	hopts := &slog.HandlerOptions{Level: cfg.Level}
	var local slog.Handler
	if cfg.Text {
		local = slog.NewTextHandler(out, hopts)
	} else {
		local = slog.NewJSONHandler(out, hopts)
	}

	if cfg.Sentry.DSN == "" {
		return slog.New(Decorate(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(Decorate(local, extractors...))
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   levelsFrom(cfg.Sentry.MinLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(Decorate(Fanout(local, remote), extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func levelsFrom(min slog.Level) []slog.Level {
	var out []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= min {
			out = append(out, l)
		}
	}
	return out
}

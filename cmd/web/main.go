// Command web runs the autoresum web shell.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/autoresum/autoresum-web/internal"
	"github.com/autoresum/autoresum-web/internal/config"
	"github.com/autoresum/autoresum-web/internal/shell"
	"github.com/autoresum/autoresum-web/internal/views"
	"github.com/autoresum/autoresum-web/middlewares"
	"github.com/autoresum/autoresum-web/pkg/boundary"
	"github.com/autoresum/autoresum-web/pkg/cache"
	"github.com/autoresum/autoresum-web/pkg/logger"
	"github.com/autoresum/autoresum-web/pkg/notify"
	"github.com/autoresum/autoresum-web/pkg/redis"
	"github.com/autoresum/autoresum-web/pkg/routes"
	"github.com/autoresum/autoresum-web/pkg/session"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor(), middlewares.ClientKeyExtractor())

	theme, err := views.LoadTheme(cfg.ThemeFile)
	if err != nil {
		return err
	}
	pages, err := views.DefaultPages()
	if err != nil {
		return err
	}

	broker := notify.NewBroker(notify.WithBrokerLogger(log))

	// Without Redis the shell runs as a single instance: toasts go straight
	// to the local broker and sessions live in memory.
	var (
		publisher  notify.Publisher = broker
		sessions   cache.Cache[*session.Session]
		runOpts    []internal.RunOption
		healthOpts []internal.HealthOption
	)
	if cfg.RedisEnabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		bus := notify.NewRedisBus(client, cfg.NotifyChannel, log)
		publisher = bus
		sessions = cache.NewRedis[*session.Session](client, nil, cache.WithPrefix("session:"))

		healthOpts = append(healthOpts, internal.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts,
			internal.StartupHook(func(ctx context.Context) error {
				return bus.Forward(ctx, broker.Deliver)
			}),
			internal.ShutdownHook(redis.Shutdown(client)),
		)
	} else {
		log.Warn("REDIS_URL is not set, using in-memory sessions and notifications")
		sessions = cache.NewMemory[*session.Session]()
	}

	registry := boundary.NewRegistry(
		[]boundary.Option{
			boundary.WithNotifier(notify.NewNotifier(publisher, log)),
			boundary.WithReporter(boundary.NewSentryReporter(nil)),
			boundary.WithLogger(log),
			boundary.WithDevelopment(cfg.IsDevelopment()),
		},
		boundary.WithRegistryLogger(log),
	)

	table := shell.NewTable(theme, pages)
	dispatcher := routes.NewDispatcher(table, routes.RequireAuth(cfg.LoginPath))

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.Recover(),
			middlewares.RequestID(),
			middlewares.ClientKey(middlewares.WithClientCookie(cfg.ClientCookie)),
		),
		internal.WithSession(session.NewCacheStore(sessions), internal.WithSessionCookieName(cfg.SessionCookie)),
		internal.WithSecureCookies(cfg.SessionSecure),
		internal.WithStaticFiles("/static/", views.Assets, "static"),
		internal.WithHealthChecks(healthOpts...),
		internal.WithErrorHandler(shell.ErrorHandler(theme)),
		internal.WithNotFoundHandler(shell.NotFoundHandler(theme)),
		internal.WithHandlers(shell.NewHandler(dispatcher, registry,
			shell.WithTheme(theme),
			shell.WithBroker(broker),
			shell.WithLogger(log),
		)),
	)

	log.Info("routes registered",
		slog.Int("pages", table.Len()),
		slog.Int("guarded", len(table.Group(routes.Dashboard))),
		slog.Bool("development", cfg.IsDevelopment()),
	)

	runOpts = append(runOpts,
		internal.WithContext(ctx),
		internal.ShutdownHook(func(context.Context) error { return registry.Close() }),
		internal.ShutdownHook(func(context.Context) error { return sessions.Close() }),
		internal.ShutdownHook(func(context.Context) error {
			sentry.Flush(sentryFlushTimeout)
			return nil
		}),
	)
	return app.Run(cfg.HTTPAddr, runOpts...)
}

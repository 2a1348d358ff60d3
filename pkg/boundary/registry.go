package boundary

import (
	"context"
	"log/slog"
	"time"

	"github.com/autoresum/autoresum-web/pkg/cache"
	"github.com/autoresum/autoresum-web/pkg/logger"
)

// DefaultIdleTTL is how long an unused client trap is kept.
const DefaultIdleTTL = 30 * time.Minute

// Registry keeps one Trap per browser client so a failure seen by one
// visitor never changes what another visitor is shown. Idle traps are
// evicted after their TTL; every lookup extends it.
type Registry struct {
	traps  *cache.Memory[*Trap]
	group  *cache.Group[*Trap]
	logger *slog.Logger
	opts   []Option
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	logger     *slog.Logger
	idle       time.Duration
	maxClients int
}

// WithIdleTTL sets how long a client trap survives without requests.
// Values below ResetAfter are raised to it.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(c *registryConfig) { c.idle = max(d, ResetAfter) }
}

// WithMaxClients caps the number of tracked clients. The least recently
// seen client is dropped first.
func WithMaxClients(n int) RegistryOption {
	return func(c *registryConfig) { c.maxClients = n }
}

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewRegistry creates a registry. trapOpts are applied to every new trap.
func NewRegistry(trapOpts []Option, opts ...RegistryOption) *Registry {
	cfg := registryConfig{idle: DefaultIdleTTL, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&cfg)
	}

	traps := cache.NewMemory(
		cache.WithDefaultTTL[*Trap](cfg.idle),
		cache.WithSlidingTTL[*Trap](),
		cache.WithMaxEntries[*Trap](cfg.maxClients),
	)
	return &Registry{
		traps:  traps,
		group:  cache.NewGroup[*Trap](traps),
		logger: cfg.logger,
		opts:   trapOpts,
	}
}

// Trap returns the trap for client, creating it on first use.
// An empty client key gets a fresh trap that is not remembered.
func (r *Registry) Trap(ctx context.Context, client string) *Trap {
	if client == "" {
		return New(r.opts...)
	}

	t, err := r.group.GetOrSet(ctx, client, func(context.Context) (*Trap, time.Duration, error) {
		return New(r.opts...), 0, nil
	})
	if err != nil {
		r.logger.WarnContext(ctx, "boundary registry unavailable", slog.Any("error", err))
		return New(r.opts...)
	}
	return t
}

// Len returns the number of tracked clients.
func (r *Registry) Len() int {
	return r.traps.Len()
}

// Close stops the background eviction.
func (r *Registry) Close() error {
	return r.traps.Close()
}

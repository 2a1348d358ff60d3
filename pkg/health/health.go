// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs every
// registered check in parallel under a shared timeout and answers 503 when
// any of them fails. Both answer plain text unless the client asks for JSON
// with an Accept header or ?format=json.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultTimeout = 5 * time.Second
)

// ErrCheckFailed is reported when at least one readiness check fails.
var ErrCheckFailed = errors.New("health: check failed")

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// Report is the JSON body of a probe response.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Result is the outcome of a single check.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures the readiness handler.
type Option func(*config)

// WithTimeout bounds the whole readiness run.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failing checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// LivenessHandler answers OK for as long as the process can serve HTTP.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Report{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := &config{timeout: defaultTimeout, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report, err := Run(r.Context(), checks, cfg.timeout)
		if err != nil {
			for name, res := range report.Checks {
				if res.Status == StatusUnhealthy {
					cfg.logger.WarnContext(r.Context(), "health check failed",
						slog.String("check", name),
						slog.String("error", res.Error),
					)
				}
			}
			respond(w, r, http.StatusServiceUnavailable, report)
			return
		}
		respond(w, r, http.StatusOK, report)
	}
}

// Run executes checks concurrently. It returns ErrCheckFailed together with
// the full report when any check fails.
func Run(ctx context.Context, checks Checks, timeout time.Duration) (*Report, error) {
	report := &Report{Status: StatusHealthy}
	if len(checks) == 0 {
		return report, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Result, len(checks))
	)
	for name, check := range checks {
		g.Go(func() error {
			res := Result{Status: StatusHealthy}
			err := check(ctx)
			if err != nil {
				res = Result{Status: StatusUnhealthy, Error: err.Error()}
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return err
		})
	}

	report.Checks = results
	if err := g.Wait(); err != nil {
		report.Status = StatusUnhealthy
		return report, ErrCheckFailed
	}
	return report, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, report *Report) {
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}

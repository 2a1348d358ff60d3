package boundary

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends trapped failures to Sentry as exceptions tagged with
// the component stack.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter reports through hub, or the current hub when nil.
// A hub stored in the request context takes precedence.
func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryReporter{hub: hub}
}

// Report captures err.
func (r *SentryReporter) Report(ctx context.Context, err error, info ErrorInfo) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = r.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("mechanism", "render_boundary")
		if len(info.ComponentStack) > 0 {
			scope.SetTag("component", info.ComponentStack[0])
			scope.SetContext("render", sentry.Context{
				"component_stack": info.ComponentStack,
			})
		}
		if f := AsRenderFailure(err); f != nil && f.Panic {
			scope.SetTag("panic", "true")
		}
		hub.CaptureException(err)
	})
}

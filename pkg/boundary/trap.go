package boundary

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/jonboulle/clockwork"

	"github.com/autoresum/autoresum-web/pkg/logger"
)

const (
	// ResetAfter is how long a trap stays tripped after its latest failure.
	ResetAfter = 5 * time.Second

	// NotificationMessage is sent to the visitor once per failure.
	NotificationMessage = "Something went wrong. Our team has been notified."

	// RetryParam is the query parameter set by the fallback's Refresh link.
	// Page handlers call Reset when it is present.
	RetryParam = "retry"
)

// FailureState is a snapshot of a trap. Err and Info are set only while
// Tripped is true.
type FailureState struct {
	TrippedAt time.Time
	Err       error
	Info      ErrorInfo
	Tripped   bool
}

// Notifier delivers a transient message to the visitor.
type Notifier interface {
	Error(ctx context.Context, message string)
}

// Reporter forwards a captured failure to an error tracker.
type Reporter interface {
	Report(ctx context.Context, err error, info ErrorInfo)
}

// Trap holds the failure state of one wrapped subtree.
type Trap struct {
	clock    clockwork.Clock
	notifier Notifier
	reporter Reporter
	logger   *slog.Logger
	fallback FallbackFunc

	mu    sync.Mutex
	state FailureState
	gen   uint64

	dev bool
}

// Option configures a Trap.
type Option func(*Trap)

// WithClock replaces the wall clock that drives the reset timer.
func WithClock(c clockwork.Clock) Option {
	return func(t *Trap) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithNotifier sets the collaborator that shows the failure toast.
func WithNotifier(n Notifier) Option {
	return func(t *Trap) {
		if n != nil {
			t.notifier = n
		}
	}
}

// WithReporter sets the collaborator that records failures for the team.
func WithReporter(r Reporter) Option {
	return func(t *Trap) {
		if r != nil {
			t.reporter = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Trap) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithDevelopment shows the failure message and component stack on the
// fallback card. Never enable it in production.
func WithDevelopment(dev bool) Option {
	return func(t *Trap) {
		t.dev = dev
	}
}

// WithFallback replaces the default fallback card.
func WithFallback(fn FallbackFunc) Option {
	return func(t *Trap) {
		if fn != nil {
			t.fallback = fn
		}
	}
}

// New creates a healthy trap.
func New(opts ...Option) *Trap {
	t := &Trap{
		clock:    clockwork.NewRealClock(),
		notifier: nopNotifier{},
		reporter: nopReporter{},
		logger:   logger.NewNope(),
		fallback: Fallback,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current failure state. A trap whose reset deadline has
// passed reads as healthy even if its timer has not fired yet.
func (t *Trap) State() FailureState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Tripped && !t.clock.Now().Before(t.state.TrippedAt.Add(ResetAfter)) {
		t.state = FailureState{}
	}
	return t.state
}

// Tripped reports whether the fallback is currently shown.
func (t *Trap) Tripped() bool {
	return t.State().Tripped
}

// OnDescendantFailure trips the trap with err and info, replacing any earlier
// failure and restarting the reset window. The state change is complete
// before the notifier and reporter are called.
func (t *Trap) OnDescendantFailure(ctx context.Context, err error, info ErrorInfo) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.state = FailureState{
		Tripped:   true,
		Err:       err,
		Info:      info,
		TrippedAt: t.clock.Now(),
	}
	t.clock.AfterFunc(ResetAfter, func() { t.reset(gen) })
	t.mu.Unlock()

	t.logger.WarnContext(ctx, "render failure trapped",
		slog.Any("error", err),
		slog.String("component_stack", info.String()),
		slog.Uint64("generation", gen),
	)

	t.notifier.Error(ctx, NotificationMessage)
	t.reporter.Report(ctx, err, info)
}

// Reset clears the state at once. A pending reset timer becomes a no-op.
func (t *Trap) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	t.state = FailureState{}
}

// reset clears the state if no newer failure has tripped the trap since gen.
func (t *Trap) reset(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		return
	}
	t.state = FailureState{}
}

// Wrap returns children guarded by t.
//
// Healthy: children render into a buffer that is copied to the output
// unchanged on success. Tripped: the fallback renders instead of children.
// A failing render discards the partial output, trips t and renders the
// fallback. Errors writing to the output are returned as is.
func (t *Trap) Wrap(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if st := t.State(); st.Tripped {
			return t.fallback(st, t.dev).Render(ctx, w)
		}

		var buf bytes.Buffer
		if err := render(ctx, &buf, children); err != nil {
			f := AsRenderFailure(err)
			t.OnDescendantFailure(ctx, f, f.Info)
			return t.fallback(t.State(), t.dev).Render(ctx, w)
		}

		_, err := buf.WriteTo(w)
		return err
	})
}

type nopNotifier struct{}

func (nopNotifier) Error(context.Context, string) {}

type nopReporter struct{}

func (nopReporter) Report(context.Context, error, ErrorInfo) {}

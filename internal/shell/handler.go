package shell

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/autoresum/autoresum-web/internal"
	"github.com/autoresum/autoresum-web/internal/views"
	"github.com/autoresum/autoresum-web/middlewares"
	"github.com/autoresum/autoresum-web/pkg/boundary"
	"github.com/autoresum/autoresum-web/pkg/logger"
	"github.com/autoresum/autoresum-web/pkg/notify"
	"github.com/autoresum/autoresum-web/pkg/routes"
)

// Handler serves every page of the route table.
type Handler struct {
	dispatcher *routes.Dispatcher
	layouts    routes.Layouts
	registry   *boundary.Registry
	langs      *views.Languages
	broker     *notify.Broker
	logger     *slog.Logger
	theme      views.Theme
}

// Option configures the Handler.
type Option func(*Handler)

// WithTheme sets the theme. Defaults to views.DefaultTheme.
func WithTheme(t views.Theme) Option {
	return func(h *Handler) { h.theme = t }
}

// WithBroker enables the notification stream at views.ToastStreamPath.
func WithBroker(b *notify.Broker) Option {
	return func(h *Handler) { h.broker = b }
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates the page handler. The dispatcher owns the table and
// the auth gate; the registry hands out the render boundary of each client.
func NewHandler(d *routes.Dispatcher, registry *boundary.Registry, opts ...Option) *Handler {
	h := &Handler{
		dispatcher: d,
		registry:   registry,
		logger:     logger.NewNope(),
		theme:      views.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.langs = views.NewLanguages(h.theme.Head.Languages...)
	h.layouts = views.NewLayouts(h.theme, d.Table())
	return h
}

// Routes registers a GET route per table entry and the notification stream.
func (h *Handler) Routes(r internal.Router) {
	for _, e := range h.dispatcher.Table().Entries() {
		r.GET(e.Path, h.page(e.Path))
	}

	if h.broker != nil {
		stream := notify.StreamHandler(h.broker, notify.WithStreamLogger(h.logger))
		r.GET(views.ToastStreamPath, func(c internal.Context) error {
			stream.ServeHTTP(c.Response(), c.Request())
			return nil
		})
	}
}

func (h *Handler) page(path string) internal.HandlerFunc {
	return func(c internal.Context) error {
		d := h.dispatcher.Decide(path, c)

		switch d.Outcome {
		case routes.Redirect:
			c.LogDebug("page requires sign in", slog.String("path", path))
			return c.Redirect(http.StatusFound, d.Location)
		case routes.Render:
			trap := h.registry.Trap(c, middlewares.GetClientKey(c))
			if c.Query(boundary.RetryParam) != "" {
				trap.Reset()
				return c.Redirect(http.StatusSeeOther, withoutRetry(path, c.Request().URL.Query()))
			}
			head := h.langs.HeadFor(h.theme, d.Entry.Name, c.Header("Accept-Language"))
			body := trap.Wrap(h.layouts.Compose(d.Entry))
			return c.Render(http.StatusOK, views.Document(h.theme, head, body))
		default:
			return internal.ErrNotFound("page not found")
		}
	}
}

// withoutRetry returns path with the query minus RetryParam.
func withoutRetry(path string, q url.Values) string {
	q.Del(boundary.RetryParam)
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

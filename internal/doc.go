// Package internal provides the HTTP core of the autoresum web shell.
//
// It wraps chi with a small, opinionated surface:
//
//   - App: owns the router, logger, session manager and run loop
//   - Context: request/response access, session identity and rendering helpers
//   - Router: the interface handlers use to declare routes
//   - Handler, HandlerFunc, Middleware, ErrorHandler: the handler contract
//
// # Handler Pattern
//
// Handlers implement Handler and declare their routes:
//
//	type PagesHandler struct {
//	    dispatcher routes.Dispatcher
//	}
//
//	func (h *PagesHandler) Routes(r internal.Router) {
//	    r.GET("/", h.show)
//	}
//
// Handlers return errors instead of writing error responses themselves. The
// App routes every non-nil error to the configured ErrorHandler, unless the
// response has already been written.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to stores,
// notifiers and components:
//
//	func (h *PagesHandler) show(c internal.Context) error {
//	    return c.Render(http.StatusOK, views.Home())
//	}
package internal

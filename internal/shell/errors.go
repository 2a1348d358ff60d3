package shell

import (
	"log/slog"
	"net/http"

	"github.com/autoresum/autoresum-web/internal"
	"github.com/autoresum/autoresum-web/internal/views"
	"github.com/autoresum/autoresum-web/middlewares"
)

// ErrorHandler renders handler errors as a themed error page. HTTP errors
// keep their status and message; anything else is a 500 and is logged.
func ErrorHandler(theme views.Theme) internal.ErrorHandler {
	langs := views.NewLanguages(theme.Head.Languages...)

	return func(c internal.Context, err error) error {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		if he := internal.AsHTTPError(err); he != nil {
			code, message = he.Code, he.Message
		}
		if code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Any("error", err))
		}

		head := langs.HeadFor(theme, http.StatusText(code), c.Header("Accept-Language"))
		page := views.ErrorPage(code, message, middlewares.GetRequestID(c))
		return c.Render(code, views.Document(theme, head, page))
	}
}

// NotFoundHandler renders the themed 404 page.
func NotFoundHandler(theme views.Theme) internal.HandlerFunc {
	langs := views.NewLanguages(theme.Head.Languages...)

	return func(c internal.Context) error {
		head := langs.HeadFor(theme, "Page not found", c.Header("Accept-Language"))
		return c.Render(http.StatusNotFound, views.Document(theme, head, views.NotFound()))
	}
}

package views

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// ErrorPage renders an HTTP error body. requestID is shown so visitors can
// quote it to support.
func ErrorPage(code int, message, requestID string) templ.Component {
	if message == "" {
		message = http.StatusText(code)
	}
	var b strings.Builder
	b.WriteString(`<section class="error-page"><p class="error-page__code">`)
	b.WriteString(strconv.Itoa(code))
	b.WriteString(`</p><h1>`)
	b.WriteString(esc(message))
	b.WriteString(`</h1>`)
	if requestID != "" {
		b.WriteString(`<p class="error-page__ref">Reference: <code>`)
		b.WriteString(esc(requestID))
		b.WriteString(`</code></p>`)
	}
	b.WriteString(`<a class="btn" href="/">Back to home</a></section>`)
	return static(b.String())
}

// NotFound is the body of the 404 page.
func NotFound() templ.Component {
	return ErrorPage(http.StatusNotFound, "We couldn't find that page", "")
}

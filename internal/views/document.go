package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ToastStreamPath is where the toast script subscribes for notifications.
const ToastStreamPath = "/notifications/stream"

// Document renders the full HTML page around body. Theme and head are the
// ambient providers every page sees.
func Document(theme Theme, head Head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="`)
		b.WriteString(esc(head.lang()))
		b.WriteString(`" data-theme="`)
		b.WriteString(esc(theme.Mode))
		b.WriteString(`"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>`)
		b.WriteString(esc(head.fullTitle(theme.Brand)))
		b.WriteString(`</title>`)
		if desc := head.Description; desc != "" {
			b.WriteString(`<meta name="description" content="`)
			b.WriteString(esc(desc))
			b.WriteString(`">`)
		}
		if theme.Accent != "" {
			b.WriteString(`<meta name="theme-color" content="`)
			b.WriteString(esc(theme.Accent))
			b.WriteString(`">`)
		}
		for _, href := range theme.Stylesheets {
			b.WriteString(`<link rel="stylesheet" href="`)
			b.WriteString(esc(href))
			b.WriteString(`">`)
		}
		for _, src := range theme.Scripts {
			b.WriteString(`<script defer src="`)
			b.WriteString(esc(src))
			b.WriteString(`"></script>`)
		}
		b.WriteString(`</head><body>`)
		b.WriteString(`<div id="toasts" class="toasts" aria-live="polite" data-stream="` + ToastStreamPath + `"></div>`)

		return wrap(b.String(), body, `</body></html>`).Render(ctx, w)
	})
}

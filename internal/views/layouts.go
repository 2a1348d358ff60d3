package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/autoresum/autoresum-web/pkg/routes"
)

// NewLayouts builds one layout per route group. Navigation links are taken
// from the table so they always match the registered routes.
func NewLayouts(theme Theme, table *routes.Table) routes.Layouts {
	top := header(theme, table.Group(routes.Main))
	side := sidebar(table.Group(routes.Dashboard))

	return routes.Layouts{
		routes.Main: func(children templ.Component) templ.Component {
			return wrap(
				`<div class="layout layout--main">`+top+`<main class="layout__content">`,
				children,
				`</main>`+footer(theme)+`</div>`,
			)
		},
		routes.Auth: func(children templ.Component) templ.Component {
			return wrap(
				`<div class="layout layout--auth"><a class="brand" href="/">`+esc(theme.Brand)+`</a><main class="auth-card">`,
				children,
				`</main></div>`,
			)
		},
		routes.Dashboard: func(children templ.Component) templ.Component {
			return wrap(
				`<div class="layout layout--dashboard">`+side+`<main class="layout__content">`,
				children,
				`</main></div>`,
			)
		},
		routes.Base: func(children templ.Component) templ.Component {
			return wrap(
				`<div class="layout layout--base"><a class="brand brand--small" href="/dashboard">`+esc(theme.Brand)+`</a>`,
				children,
				`</div>`,
			)
		},
	}
}

func header(theme Theme, entries []routes.Entry) string {
	var b strings.Builder
	b.WriteString(`<header class="site-header"><a class="brand" href="/">`)
	b.WriteString(esc(theme.Brand))
	b.WriteString(`</a><nav class="site-nav">`)
	for _, e := range entries {
		if e.Path == "/" {
			continue
		}
		navLink(&b, e)
	}
	b.WriteString(`<a class="btn btn-primary" href="/login">Sign in</a></nav></header>`)
	return b.String()
}

func sidebar(entries []routes.Entry) string {
	var b strings.Builder
	b.WriteString(`<aside class="sidebar"><nav>`)
	for _, e := range entries {
		navLink(&b, e)
	}
	b.WriteString(`</nav></aside>`)
	return b.String()
}

func footer(theme Theme) string {
	return `<footer class="site-footer"><span>&copy; ` + esc(theme.Brand) +
		`</span><a href="/privacy">Privacy</a><a href="/terms">Terms</a></footer>`
}

func navLink(b *strings.Builder, e routes.Entry) {
	b.WriteString(`<a href="`)
	b.WriteString(esc(e.Path))
	b.WriteString(`">`)
	b.WriteString(esc(e.Name))
	b.WriteString(`</a>`)
}

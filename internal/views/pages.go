package views

import (
	"strings"

	"github.com/a-h/templ"
)

// Section renders a titled placeholder section. Page bodies are owned by
// the feature services; the shell only provides their frame.
func Section(heading, lead string) templ.Component {
	var b strings.Builder
	b.WriteString(`<section class="page"><h1>`)
	b.WriteString(esc(heading))
	b.WriteString(`</h1>`)
	if lead != "" {
		b.WriteString(`<p class="lead">`)
		b.WriteString(esc(lead))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</section>`)
	return static(b.String())
}

// Home is the landing page.
func Home(theme Theme) templ.Component {
	return static(`<section class="hero"><h1>` + esc(theme.Brand) + `</h1>` +
		`<p class="lead">Create a resume that gets you hired.</p>` +
		`<a class="btn btn-primary" href="/register">Get started</a> ` +
		`<a class="btn" href="/features">See features</a></section>`)
}

// AuthForm renders a form placeholder posting to action. Handling the form
// is the auth service's job.
func AuthForm(heading, action, submit string, fields ...string) templ.Component {
	var b strings.Builder
	b.WriteString(`<h1>`)
	b.WriteString(esc(heading))
	b.WriteString(`</h1><form method="post" action="`)
	b.WriteString(esc(action))
	b.WriteString(`">`)
	for _, f := range fields {
		kind := "text"
		switch f {
		case "email":
			kind = "email"
		case "password", "confirm_password":
			kind = "password"
		}
		b.WriteString(`<label>`)
		b.WriteString(esc(strings.ReplaceAll(f, "_", " ")))
		b.WriteString(`<input name="`)
		b.WriteString(esc(f))
		b.WriteString(`" type="`)
		b.WriteString(kind)
		b.WriteString(`" required></label>`)
	}
	b.WriteString(`<button type="submit" class="btn btn-primary">`)
	b.WriteString(esc(submit))
	b.WriteString(`</button></form>`)
	return static(b.String())
}

// Editor renders the editing surface placeholder for a document kind.
func Editor(heading, kind string) templ.Component {
	return static(`<section class="editor" data-kind="` + esc(kind) + `"><h1>` + esc(heading) +
		`</h1><div class="editor__canvas" id="editor"></div></section>`)
}

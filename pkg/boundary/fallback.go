package boundary

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// FallbackFunc builds the view shown while a trap is tripped.
// dev is true when diagnostics may be shown.
type FallbackFunc func(st FailureState, dev bool) templ.Component

// Fallback is the default fallback card: an apology and a Refresh link that
// reloads the current URL with RetryParam set. With dev set it also prints
// the failure message and the component stack.
func Fallback(st FailureState, dev bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="boundary" role="alert">`)
		b.WriteString(`<div class="boundary__card">`)
		b.WriteString(`<h2 class="boundary__title">Something went wrong</h2>`)
		b.WriteString(`<p class="boundary__text">We're sorry, this page could not be displayed. Please refresh to try again.</p>`)
		b.WriteString(`<a class="btn btn-primary" href="?`)
		b.WriteString(RetryParam)
		b.WriteString(`=1">Refresh</a>`)

		if dev && st.Tripped && st.Err != nil {
			b.WriteString(`<details class="boundary__debug" open><summary>Error details</summary>`)
			b.WriteString(`<pre class="boundary__error">`)
			b.WriteString(templ.EscapeString(st.Err.Error()))
			b.WriteString(`</pre>`)
			if stack := st.Info.String(); stack != "" {
				b.WriteString(`<pre class="boundary__stack">`)
				b.WriteString(templ.EscapeString(stack))
				b.WriteString(`</pre>`)
			}
			b.WriteString(`</details>`)
		}

		b.WriteString(`</div></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

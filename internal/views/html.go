package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// wrap renders open, then children, then close. A children error is returned
// as is and close is not written.
func wrap(open string, children templ.Component, close string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, close)
		return err
	})
}

// static renders a fixed HTML fragment.
func static(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

package boundary

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Named marks c as a subtree called name. A failure inside c reaches the
// nearest Trap as a *RenderFailure with name on its component stack.
func Named(name string, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := render(ctx, w, c)
		if err == nil {
			return nil
		}
		f := AsRenderFailure(err)
		f.push(name)
		return f
	})
}

// render runs c and converts a panic into a *RenderFailure.
func render(ctx context.Context, w io.Writer, c templ.Component) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recovered(v)
		}
	}()
	return c.Render(ctx, w)
}

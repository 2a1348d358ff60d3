package routes

import "github.com/a-h/templ"

// Layout wraps a page in its group's chrome.
type Layout func(children templ.Component) templ.Component

// Layouts maps each group to its layout.
type Layouts map[Group]Layout

// Compose returns e's view inside its group's layout. A group without a
// layout renders the bare view. Each call builds a new wrapper.
func (l Layouts) Compose(e Entry) templ.Component {
	layout, ok := l[e.Group]
	if !ok || layout == nil {
		return e.View
	}
	return layout(e.View)
}

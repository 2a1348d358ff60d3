// Package routes holds the static page table of the web shell and the pure
// dispatcher that turns a request path and a viewer into a render decision.
//
// Dispatch runs three independent steps: page selection by exact path,
// layout selection by the entry's group, and gating for guarded groups.
package routes

// Group is the layout group of a route. It selects the wrapper that
// surrounds the page and whether the page requires a signed-in viewer.
type Group int

const (
	Main Group = iota + 1
	Auth
	Dashboard
	Base
)

var groupNames = map[Group]string{
	Main:      "main",
	Auth:      "auth",
	Dashboard: "dashboard",
	Base:      "base",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether g is one of the four declared groups.
func (g Group) Valid() bool {
	_, ok := groupNames[g]
	return ok
}

// Guarded reports whether pages of g require authentication.
// Only Dashboard is guarded.
func (g Group) Guarded() bool {
	return g == Dashboard
}

package routes

import "net/url"

// Viewer is what the gate knows about the visitor.
type Viewer interface {
	IsAuthenticated() bool
}

// Anonymous is a Viewer without a session.
var Anonymous Viewer = viewer(false)

// Authenticated is a Viewer with a signed-in session.
var Authenticated Viewer = viewer(true)

type viewer bool

func (v viewer) IsAuthenticated() bool { return bool(v) }

// Verdict is a gate's answer. A denied verdict carries the redirect target.
type Verdict struct {
	RedirectTo string
	Allowed    bool
}

// Gate decides whether v may see the guarded page at path.
type Gate interface {
	Check(path string, v Viewer) Verdict
}

// GateFunc adapts a function to Gate.
type GateFunc func(path string, v Viewer) Verdict

func (f GateFunc) Check(path string, v Viewer) Verdict {
	return f(path, v)
}

// RequireAuth admits authenticated viewers and sends everyone else to
// loginPath with the requested path in the "next" query parameter.
func RequireAuth(loginPath string) Gate {
	return GateFunc(func(path string, v Viewer) Verdict {
		if v != nil && v.IsAuthenticated() {
			return Verdict{Allowed: true}
		}
		return Verdict{RedirectTo: loginPath + "?" + url.Values{"next": {path}}.Encode()}
	})
}

package routes_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/routes"
)

func page(body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, body)
		return err
	})
}

func sampleTable(t *testing.T) *routes.Table {
	t.Helper()
	table, err := routes.NewTable(
		routes.Entry{Path: "/", Name: "Home", View: page("home"), Group: routes.Main},
		routes.Entry{Path: "/pricing", Name: "Pricing", View: page("pricing"), Group: routes.Main},
		routes.Entry{Path: "/login", Name: "Login", View: page("login"), Group: routes.Auth},
		routes.Entry{Path: "/dashboard", Name: "Dashboard", View: page("dashboard"), Group: routes.Dashboard},
		routes.Entry{Path: "/resume/new", Name: "New resume", View: page("editor"), Group: routes.Base},
	)
	require.NoError(t, err)
	return table
}

func TestGroup(t *testing.T) {
	t.Parallel()

	for _, g := range []routes.Group{routes.Main, routes.Auth, routes.Dashboard, routes.Base} {
		require.True(t, g.Valid(), g.String())
		require.Equal(t, g == routes.Dashboard, g.Guarded(), g.String())
	}
	require.False(t, routes.Group(0).Valid())
	require.Equal(t, "unknown", routes.Group(42).String())
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	v := page("x")
	tests := []struct {
		name    string
		want    error
		entries []routes.Entry
	}{
		{
			name:    "empty path",
			entries: []routes.Entry{{Path: "", View: v, Group: routes.Main}},
			want:    routes.ErrEmptyPath,
		},
		{
			name:    "relative path",
			entries: []routes.Entry{{Path: "pricing", View: v, Group: routes.Main}},
			want:    routes.ErrInvalidPath,
		},
		{
			name: "duplicate path across groups",
			entries: []routes.Entry{
				{Path: "/a", View: v, Group: routes.Main},
				{Path: "/a", View: v, Group: routes.Auth},
			},
			want: routes.ErrDuplicatePath,
		},
		{
			name:    "unknown group",
			entries: []routes.Entry{{Path: "/a", View: v}},
			want:    routes.ErrUnknownGroup,
		},
		{
			name:    "nil view",
			entries: []routes.Entry{{Path: "/a", Group: routes.Main}},
			want:    routes.ErrNilView,
		},
		{
			name: "split group",
			entries: []routes.Entry{
				{Path: "/a", View: v, Group: routes.Main},
				{Path: "/login", View: v, Group: routes.Auth},
				{Path: "/b", View: v, Group: routes.Main},
			},
			want: routes.ErrSplitGroup,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			table, err := routes.NewTable(tc.entries...)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, table)
		})
	}

	t.Run("MustTable panics on invalid input", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { routes.MustTable(routes.Entry{}) })
	})
}

func TestTable_Lookup(t *testing.T) {
	t.Parallel()
	table := sampleTable(t)

	e, ok := table.Lookup("/pricing")
	require.True(t, ok)
	require.Equal(t, "Pricing", e.Name)
	require.Equal(t, routes.Main, e.Group)

	for _, p := range []string{"/pricing/", "/Pricing", "/pricing?x=1", "", "/dashboard/x"} {
		_, ok := table.Lookup(p)
		require.False(t, ok, p)
	}

	entries := table.Entries()
	entries[0].Path = "/mutated"
	_, ok = table.Lookup("/")
	require.True(t, ok, "Entries must return a copy")
	require.Equal(t, 5, table.Len())
	require.Len(t, table.Group(routes.Main), 2)
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	gate := routes.RequireAuth("/login")

	require.True(t, gate.Check("/dashboard", routes.Authenticated).Allowed)

	v := gate.Check("/dashboard/resumes", routes.Anonymous)
	require.False(t, v.Allowed)
	require.Equal(t, "/login?next=%2Fdashboard%2Fresumes", v.RedirectTo)

	require.False(t, gate.Check("/dashboard", nil).Allowed)
}

func TestDispatcher_Decide(t *testing.T) {
	t.Parallel()
	d := routes.NewDispatcher(sampleTable(t), nil)

	t.Run("unknown path is not found", func(t *testing.T) {
		t.Parallel()
		dec := d.Decide("/nope", routes.Authenticated)
		require.Equal(t, routes.NotFound, dec.Outcome)
	})

	t.Run("public pages ignore the gate", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"/", "/pricing", "/login", "/resume/new"} {
			dec := d.Decide(p, routes.Anonymous)
			require.Equal(t, routes.Render, dec.Outcome, p)
			require.Equal(t, p, dec.Entry.Path)
		}
	})

	t.Run("guarded page renders for signed-in viewer", func(t *testing.T) {
		t.Parallel()
		dec := d.Decide("/dashboard", routes.Authenticated)
		require.Equal(t, routes.Render, dec.Outcome)
		require.Equal(t, routes.Dashboard, dec.Entry.Group)
	})

	t.Run("guarded page redirects anonymous viewer", func(t *testing.T) {
		t.Parallel()
		dec := d.Decide("/dashboard", routes.Anonymous)
		require.Equal(t, routes.Redirect, dec.Outcome)
		require.Equal(t, "/login?next=%2Fdashboard", dec.Location)
		require.Nil(t, dec.Entry.View)
	})

	t.Run("gate is consulted only for guarded groups", func(t *testing.T) {
		t.Parallel()
		var checked []string
		deny := routes.GateFunc(func(path string, _ routes.Viewer) routes.Verdict {
			checked = append(checked, path)
			return routes.Verdict{RedirectTo: "/login"}
		})
		d := routes.NewDispatcher(sampleTable(t), deny)

		for _, e := range d.Table().Entries() {
			dec := d.Decide(e.Path, routes.Authenticated)
			if e.Guarded() {
				require.Equal(t, routes.Redirect, dec.Outcome)
			} else {
				require.Equal(t, routes.Render, dec.Outcome)
			}
		}
		require.Equal(t, []string{"/dashboard"}, checked)
	})

	t.Run("denial without target redirects to login", func(t *testing.T) {
		t.Parallel()
		deny := routes.GateFunc(func(string, routes.Viewer) routes.Verdict { return routes.Verdict{} })
		dec := routes.NewDispatcher(sampleTable(t), deny).Decide("/dashboard", routes.Authenticated)
		require.Equal(t, routes.Redirect, dec.Outcome)
		require.Equal(t, routes.DefaultLoginPath, dec.Location)
		require.Nil(t, dec.Entry.View)
	})
}

func TestLayouts_Compose(t *testing.T) {
	t.Parallel()

	wrap := func(tag string) routes.Layout {
		return func(children templ.Component) templ.Component {
			return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, _ = io.WriteString(w, "<"+tag+">")
				if err := children.Render(ctx, w); err != nil {
					return err
				}
				_, err := io.WriteString(w, "</"+tag+">")
				return err
			})
		}
	}
	layouts := routes.Layouts{routes.Main: wrap("main"), routes.Auth: wrap("auth")}
	table := sampleTable(t)

	render := func(path string) string {
		e, ok := table.Lookup(path)
		require.True(t, ok)
		var buf bytes.Buffer
		require.NoError(t, layouts.Compose(e).Render(context.Background(), &buf))
		return buf.String()
	}

	require.Equal(t, "<main>pricing</main>", render("/pricing"))
	require.Equal(t, "<auth>login</auth>", render("/login"))
	require.Equal(t, "editor", render("/resume/new"))
}

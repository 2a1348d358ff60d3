package routes

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

var (
	ErrEmptyPath     = errors.New("routes: empty path")
	ErrInvalidPath   = errors.New("routes: path must start with /")
	ErrDuplicatePath = errors.New("routes: duplicate path")
	ErrUnknownGroup  = errors.New("routes: unknown layout group")
	ErrNilView       = errors.New("routes: nil view")
	ErrSplitGroup    = errors.New("routes: layout group entries are not contiguous")
)

// Entry maps one path to the page shown there.
type Entry struct {
	View  templ.Component
	Path  string
	Name  string // used for the page title and the component stack
	Group Group
}

// Guarded reports whether the entry requires authentication.
func (e Entry) Guarded() bool {
	return e.Group.Guarded()
}

// Table is an immutable list of entries with unique paths, each group
// forming one contiguous block.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable validates entries and builds the table.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: slices.Clone(entries),
		index:   make(map[string]int, len(entries)),
	}

	closed := make(map[Group]bool)
	var prev Group
	for i, e := range t.entries {
		switch {
		case e.Path == "":
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyPath, i)
		case !strings.HasPrefix(e.Path, "/"):
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, e.Path)
		case !e.Group.Valid():
			return nil, fmt.Errorf("%w: %q has group %d", ErrUnknownGroup, e.Path, int(e.Group))
		case e.View == nil:
			return nil, fmt.Errorf("%w: %q", ErrNilView, e.Path)
		}
		if _, dup := t.index[e.Path]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, e.Path)
		}
		if e.Group != prev {
			if closed[e.Group] {
				return nil, fmt.Errorf("%w: %s at %q", ErrSplitGroup, e.Group, e.Path)
			}
			closed[prev] = true
			prev = e.Group
		}
		t.index[e.Path] = i
	}
	return t, nil
}

// MustTable is NewTable that panics on invalid input. Use it for tables
// declared at startup.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the entry whose path equals path exactly.
func (t *Table) Lookup(path string) (Entry, bool) {
	i, ok := t.index[path]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of all entries in declaration order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Group returns the entries of g in declaration order.
func (t *Table) Group(g Group) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

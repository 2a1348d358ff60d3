package routes

// Outcome is what the shell should do with a request.
type Outcome int

const (
	NotFound Outcome = iota
	Render
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "not_found"
	}
}

// Decision is the result of dispatching one path.
type Decision struct {
	Entry    Entry
	Location string // redirect target when Outcome is Redirect
	Outcome  Outcome
}

// DefaultLoginPath is where RequireAuth sends anonymous viewers when the
// dispatcher is built without an explicit gate. It is also the redirect
// target of a denial that names none.
const DefaultLoginPath = "/login"

// Dispatcher maps paths to decisions. It performs no I/O.
type Dispatcher struct {
	table *Table
	gate  Gate
}

// NewDispatcher creates a dispatcher over table. A nil gate selects
// RequireAuth(DefaultLoginPath).
func NewDispatcher(table *Table, gate Gate) *Dispatcher {
	if gate == nil {
		gate = RequireAuth(DefaultLoginPath)
	}
	return &Dispatcher{table: table, gate: gate}
}

// Table returns the dispatcher's route table.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Decide selects the page for path, then consults the gate when the page's
// group is guarded. A denied viewer never gets a Render decision.
func (d *Dispatcher) Decide(path string, v Viewer) Decision {
	entry, ok := d.table.Lookup(path)
	if !ok {
		return Decision{Outcome: NotFound}
	}

	if !entry.Guarded() {
		return Decision{Outcome: Render, Entry: entry}
	}

	verdict := d.gate.Check(path, v)
	if !verdict.Allowed {
		loc := verdict.RedirectTo
		if loc == "" {
			loc = DefaultLoginPath
		}
		return Decision{Outcome: Redirect, Location: loc}
	}
	return Decision{Outcome: Render, Entry: entry}
}

package types

import "sort"

// TableKind identifies one of the four output tables.
type TableKind int

const (
	// TableSamples holds timestamped health measurements (Record elements).
	TableSamples TableKind = iota
	// TableWorkouts holds recorded exercise sessions (Workout elements).
	TableWorkouts
	// TableActivities holds per-day activity summaries (ActivitySummary elements).
	TableActivities
	// TableRoutes holds workout route references resolved against track files.
	TableRoutes
)

// String returns a human-readable representation of the TableKind.
func (k TableKind) String() string {
	switch k {
	case TableSamples:
		return "samples"
	case TableWorkouts:
		return "workouts"
	case TableActivities:
		return "activities"
	case TableRoutes:
		return "routes"
	default:
		return "unknown"
	}
}

// Table is an ordered collection of rows of one kind.
//
// Row order is unspecified: rows arrive in batch-completion order and batch
// completion across parallel workers is nondeterministic. Consumers must not
// rely on position; compare by key or as a multiset.
type Table struct {
	Kind TableKind
	Rows []Row
}

// NewTable creates an empty table of the given kind with capacity hint n.
func NewTable(kind TableKind, n int) *Table {
	return &Table{Kind: kind, Rows: make([]Row, 0, n)}
}

// Append adds rows to the table.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Columns returns the union of column names across all rows, sorted.
func (t *Table) Columns() []string {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		for c := range r {
			seen[c] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for c := range seen {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

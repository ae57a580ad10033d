// Package rank holds the fixed total orders used to sort enum-valued fields.
package rank

// Table maps enum values to ascending ordinals.
type Table struct {
	name  string
	order map[string]int
}

// New creates a table; values are ranked in argument order.
// Duplicates keep their first position.
func New(name string, values ...string) Table {
	order := make(map[string]int, len(values))
	for i, v := range values {
		if _, dup := order[v]; !dup {
			order[v] = i
		}
	}
	return Table{name: name, order: order}
}

// Name returns the enum name.
func (t Table) Name() string { return t.name }

// Of returns the ordinal of v. Unknown values report ok=false.
func (t Table) Of(v string) (int, bool) {
	i, ok := t.order[v]
	return i, ok
}

// Contains reports whether v is a member of the enum.
func (t Table) Contains(v string) bool {
	_, ok := t.order[v]
	return ok
}

// Predefined enum orders.
var (
	Priority  = New("priority", "high", "medium", "low")
	Status    = New("status", "not-started", "in-progress", "completed", "verified")
	PriceTier = New("price_tier", "free", "budget", "moderate", "premium")
)

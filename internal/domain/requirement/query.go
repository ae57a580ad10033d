package requirement

import (
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
)

// StatusOverdue is the derived status filter value.
const StatusOverdue = "overdue"

// Sort keys.
const (
	SortDueDate  sortkey.Key = "due-date"
	SortPriority sortkey.Key = "priority"
	SortStatus   sortkey.Key = "status"
	SortName     sortkey.Key = "name"
	SortCategory sortkey.Key = "category"
)

// Sorts is the tracker sort registry; due-date is the default.
var Sorts = sortkey.MustRegistry(
	sortkey.Entry{Key: SortDueDate, Compare: sortkey.ByDate(FieldDueDate)},
	sortkey.Entry{Key: SortPriority, Compare: sortkey.ByRank(FieldPriority, rank.Priority)},
	sortkey.Entry{Key: SortStatus, Compare: sortkey.ByRank(FieldStatus, rank.Status)},
	sortkey.Entry{Key: SortName, Compare: sortkey.ByString(FieldName)},
	sortkey.Entry{Key: SortCategory, Compare: sortkey.ByString(FieldCategory)},
)

// Query is the tracker's filter and sort state. Zero values are unconstrained.
type Query struct {
	Search string
	// Status is a Status, "overdue", "all" or empty.
	Status   string
	Category string
	Priority string
	Sort     sortkey.Key
	Order    sortkey.Order
	// Now is the reference time for the overdue filter.
	Now time.Time
}

// Criteria builds the filter criteria. Unknown status and priority values
// leave that dimension unconstrained.
func (q Query) Criteria() filter.Criteria {
	conds := []filter.Condition{
		filter.Text(q.Search),
		filter.Equals(FieldCategory, q.Category),
	}

	switch {
	case q.Status == StatusOverdue:
		conds = append(conds, Overdue(q.Now))
	case Status(q.Status).IsValid():
		conds = append(conds, filter.Equals(FieldStatus, q.Status))
	}

	if Priority(q.Priority).IsValid() {
		conds = append(conds, filter.Equals(FieldPriority, q.Priority))
	}

	return filter.New(conds...)
}

// SortSpec resolves the sort leniently; ok is false when the key was unknown
// and the identity order applies.
func (q Query) SortSpec() (sortkey.Spec, bool) {
	return Sorts.Resolve(q.Sort, q.Order)
}

// Overdue returns the overdue condition evaluated at now.
func Overdue(now time.Time) filter.Condition {
	return filter.Overdue(filter.OverdueRule{
		DateField:   FieldDueDate,
		StatusField: FieldStatus,
		Terminal:    TerminalStatuses(),
		AsOf:        now,
	})
}

// Package filter describes the declarative constraints applied to a record collection.
//
// Constructors never fail. A condition built from an inactive value ("", "all",
// an empty set, a blank field name) is inactive and New drops it, so a malformed
// dimension degrades to "no constraint" instead of surfacing an error.
package filter

import (
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// All is the categorical value meaning "no constraint".
const All = "all"

// Kind is the type of a single condition.
type Kind string

// Condition kinds.
const (
	KindText    Kind = "text"
	KindEquals  Kind = "equals"
	KindAnyOf   Kind = "any_of"
	KindAtLeast Kind = "at_least"
	KindAtMost  Kind = "at_most"
	KindFlag    Kind = "flag"
	KindOverdue Kind = "overdue"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case KindText, KindEquals, KindAnyOf, KindAtLeast, KindAtMost, KindFlag, KindOverdue:
		return true
	}
	return false
}

// OverdueRule derives "overdue" from a date field and a status field.
// A record is overdue when its due calendar day is strictly before the calendar
// day of AsOf and its status is not one of Terminal. Due today is not overdue.
type OverdueRule struct {
	DateField   string
	StatusField string
	Terminal    []string
	AsOf        time.Time
}

// Condition is a single filter dimension.
type Condition struct {
	kind    Kind
	field   string
	value   string
	values  []string
	bound   float64
	want    bool
	overdue OverdueRule
}

// Text matches when query is a case-insensitive substring of any searchable field.
// Surrounding whitespace is ignored; a blank query is inactive.
func Text(query string) Condition {
	return Condition{kind: KindText, value: strings.TrimSpace(query)}
}

// Equals matches when the categorical field equals value. "" and "all" are inactive.
func Equals(field, value string) Condition {
	if value == All {
		value = ""
	}
	return Condition{kind: KindEquals, field: field, value: value}
}

// AnyOf matches when the field's set intersects values. Empty values are dropped.
func AnyOf(field string, values ...string) Condition {
	set := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !slices.Contains(set, v) {
			set = append(set, v)
		}
	}
	return Condition{kind: KindAnyOf, field: field, values: set}
}

// AtLeast matches when the numeric field is >= bound.
func AtLeast(field string, bound float64) Condition {
	return Condition{kind: KindAtLeast, field: field, bound: bound}
}

// AtMost matches when the numeric field is <= bound.
func AtMost(field string, bound float64) Condition {
	return Condition{kind: KindAtMost, field: field, bound: bound}
}

// Flag matches when the boolean field equals want.
func Flag(field string, want bool) Condition {
	return Condition{kind: KindFlag, field: field, want: want}
}

// Overdue matches records that are overdue under rule.
func Overdue(rule OverdueRule) Condition {
	rule.Terminal = slices.Clone(rule.Terminal)
	return Condition{kind: KindOverdue, field: rule.DateField, overdue: rule}
}

// Kind returns the condition type.
func (c Condition) Kind() Kind { return c.kind }

// Field returns the constrained field name (empty for text).
func (c Condition) Field() string { return c.field }

// Value returns the text query or the equality value.
func (c Condition) Value() string { return c.value }

// Values returns the any-of set.
func (c Condition) Values() []string { return c.values }

// Bound returns the numeric threshold.
func (c Condition) Bound() float64 { return c.bound }

// Want returns the expected flag value.
func (c Condition) Want() bool { return c.want }

// Rule returns the overdue rule.
func (c Condition) Rule() OverdueRule { return c.overdue }

// IsActive reports whether the condition constrains anything.
func (c Condition) IsActive() bool {
	switch c.kind {
	case KindText:
		return c.value != ""
	case KindEquals:
		return c.field != "" && c.value != ""
	case KindAnyOf:
		return c.field != "" && len(c.values) > 0
	case KindAtLeast, KindAtMost:
		return c.field != "" && !math.IsNaN(c.bound)
	case KindFlag:
		return c.field != ""
	case KindOverdue:
		return c.overdue.DateField != "" && !c.overdue.AsOf.IsZero()
	default:
		return false
	}
}

// Matches evaluates the condition against r. Inactive conditions always match;
// a missing field never matches an active condition.
func (c Condition) Matches(r record.Record) bool {
	return c.matches(r, nil)
}

func (c Condition) matches(r record.Record, fold *cases.Caser) bool {
	if !c.IsActive() {
		return true
	}
	switch c.kind {
	case KindText:
		return matchText(r, c.value, fold)
	case KindEquals:
		v, ok := r.Category(c.field)
		return ok && v == c.value
	case KindAnyOf:
		for _, v := range r.Set(c.field) {
			if slices.Contains(c.values, v) {
				return true
			}
		}
		return false
	case KindAtLeast:
		v, ok := r.Number(c.field)
		return ok && v >= c.bound
	case KindAtMost:
		v, ok := r.Number(c.field)
		return ok && v <= c.bound
	case KindFlag:
		v, ok := r.Flag(c.field)
		return ok && v == c.want
	case KindOverdue:
		return isOverdue(r, c.overdue)
	default:
		return true
	}
}

func matchText(r record.Record, query string, fold *cases.Caser) bool {
	if fold == nil {
		f := cases.Fold()
		fold = &f
	}
	q := fold.String(query)
	for _, s := range r.Searchable() {
		if strings.Contains(fold.String(s), q) {
			return true
		}
	}
	return false
}

func isOverdue(r record.Record, rule OverdueRule) bool {
	due, ok := r.Date(rule.DateField)
	if !ok {
		return false
	}
	if rule.StatusField != "" {
		if status, ok := r.Category(rule.StatusField); ok && slices.Contains(rule.Terminal, status) {
			return false
		}
	}
	return DaysUntil(due, rule.AsOf) < 0
}

// DaysUntil returns the number of calendar days from asOf to due.
// due is read as a calendar date in its own location, asOf in its own location,
// so a date-only due value never shifts across a timezone boundary.
// Unix seconds are compared directly since time.Duration saturates at about 292 years.
func DaysUntil(due, asOf time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return int((d.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Criteria is the conjunction of active conditions. The zero value matches everything.
type Criteria struct {
	conds []Condition
}

// New creates Criteria from conditions, dropping inactive ones.
func New(conds ...Condition) Criteria {
	return Criteria{}.With(conds...)
}

// With returns a copy of c extended with the active conditions among conds.
func (c Criteria) With(conds ...Condition) Criteria {
	out := make([]Condition, 0, len(c.conds)+len(conds))
	out = append(out, c.conds...)
	for _, cond := range conds {
		if cond.IsActive() {
			out = append(out, cond)
		}
	}
	return Criteria{conds: out}
}

// Conditions returns the active conditions.
func (c Criteria) Conditions() []Condition { return c.conds }

// Len returns the number of active conditions.
func (c Criteria) Len() int { return len(c.conds) }

// IsEmpty reports whether the criteria has no active conditions.
func (c Criteria) IsEmpty() bool { return len(c.conds) == 0 }

// Matches reports whether r satisfies every active condition.
func (c Criteria) Matches(r record.Record) bool {
	return c.Matcher()(r)
}

// Matcher returns a predicate for one filtering pass. It reuses a single case folder,
// so the returned func must not be shared between goroutines.
func (c Criteria) Matcher() func(record.Record) bool {
	fold := cases.Fold()
	return func(r record.Record) bool {
		for _, cond := range c.conds {
			if !cond.matches(r, &fold) {
				return false
			}
		}
		return true
	}
}

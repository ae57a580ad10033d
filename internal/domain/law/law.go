// Package law models the local laws and regulations guide.
package law

import (
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
	"github.com/kailas-cloud/safeexplore/internal/pipeline"
)

// Severity is how seriously a law is enforced.
type Severity string

// Severity values.
const (
	SeverityCritical  Severity = "critical"
	SeverityImportant Severity = "important"
	SeverityAdvisory  Severity = "advisory"
)

// IsValid checks if the severity is one of the supported values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityImportant, SeverityAdvisory:
		return true
	}
	return false
}

// fieldFacets holds both the severity and the category so one any-of filter
// matches either.
const fieldFacets = "facets"

// Law is a single rule a visitor should know about.
type Law struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	Category    string
	Penalties   string
	Examples    []string
}

// Validate checks the fields the guide relies on.
func (l Law) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("law ID is required")
	}
	if l.Title == "" {
		return fmt.Errorf("law %q: title is required", l.ID)
	}
	if !l.Severity.IsValid() {
		return fmt.Errorf("law %q: unknown severity %q", l.ID, l.Severity)
	}
	return nil
}

// Record projects the law for the query pipeline.
// Searchable fields are title, description, then penalties.
func (l Law) Record() record.Record {
	rec, _ := record.New(l.ID,
		record.Searchable(l.Title, l.Description, l.Penalties),
		record.Values(fieldFacets, string(l.Severity), l.Category),
	)
	return rec
}

// Group is a titled section of laws.
type Group struct {
	ID    string
	Title string
	Icon  string
	Laws  []Law
}

// GroupResult is a group narrowed by a query.
type GroupResult struct {
	ID            string
	Title         string
	Icon          string
	Laws          []Law
	CriticalCount int
}

// Query narrows the guide. Filters holds severities and categories; a law is
// kept when it matches any of them.
type Query struct {
	Search  string
	Filters []string
}

// Criteria builds the filter criteria.
func (q Query) Criteria() filter.Criteria {
	return filter.New(
		filter.Text(q.Search),
		filter.AnyOf(fieldFacets, q.Filters...),
	)
}

// Apply narrows every group in catalog order and drops groups left empty.
func Apply(groups []Group, q Query) []GroupResult {
	crit := q.Criteria()
	out := make([]GroupResult, 0, len(groups))
	for _, g := range groups {
		laws := pipeline.Select(g.Laws, Law.Record, crit, sortkey.Spec{})
		if len(laws) == 0 {
			continue
		}
		critical := 0
		for _, l := range laws {
			if l.Severity == SeverityCritical {
				critical++
			}
		}
		out = append(out, GroupResult{
			ID:            g.ID,
			Title:         g.Title,
			Icon:          g.Icon,
			Laws:          laws,
			CriticalCount: critical,
		})
	}
	return out
}

// Totals sums laws and critical laws across results.
func Totals(results []GroupResult) (laws, critical int) {
	for _, r := range results {
		laws += len(r.Laws)
		critical += r.CriticalCount
	}
	return laws, critical
}

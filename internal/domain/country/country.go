// Package country models the destinations a visitor can pick before exploring.
package country

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

var codeRegex = regexp.MustCompile(`^[A-Z]{2}$`)

// Record field names.
const (
	FieldName      = "name"
	FieldCode      = "code"
	FieldContinent = "continent"
)

// Country is a selectable destination. Code is ISO 3166-1 alpha-2.
type Country struct {
	Code      string
	Name      string
	Flag      string
	Continent string
	Cities    []string
}

// Validate checks the fields the selector relies on.
func (c Country) Validate() error {
	if !codeRegex.MatchString(c.Code) {
		return fmt.Errorf("country %q: code must be two upper-case letters", c.Code)
	}
	if c.Name == "" {
		return fmt.Errorf("country %q: name is required", c.Code)
	}
	return nil
}

// HasCity reports whether city is listed for the country, ignoring case.
func (c Country) HasCity(city string) bool {
	return slices.ContainsFunc(c.Cities, func(s string) bool { return strings.EqualFold(s, city) })
}

// Record projects the country for the query pipeline. Name and code are searchable.
func (c Country) Record() record.Record {
	rec, _ := record.New(c.Code,
		record.Searchable(c.Name, c.Code),
		record.Category(FieldName, c.Name),
		record.Category(FieldCode, c.Code),
		record.Category(FieldContinent, c.Continent),
	)
	return rec
}

// View is the record projection used by the listing pipeline.
func View(c Country) record.Record { return c.Record() }

// Find returns the country with code, ignoring case.
func Find(countries []Country, code string) (Country, bool) {
	i := slices.IndexFunc(countries, func(c Country) bool { return strings.EqualFold(c.Code, code) })
	if i < 0 {
		return Country{}, false
	}
	return countries[i], true
}

// Sort keys.
const (
	SortName      sortkey.Key = "name"
	SortCode      sortkey.Key = "code"
	SortContinent sortkey.Key = "continent"
)

// Sorts is the selector sort registry; alphabetical by name is the default.
var Sorts = sortkey.MustRegistry(
	sortkey.Entry{Key: SortName, Compare: sortkey.ByString(FieldName)},
	sortkey.Entry{Key: SortCode, Compare: sortkey.ByString(FieldCode)},
	sortkey.Entry{Key: SortContinent, Compare: sortkey.ByString(FieldContinent)},
)

// Query is the selector search state. Zero values are unconstrained.
type Query struct {
	Search    string
	Continent string
	Sort      sortkey.Key
	Order     sortkey.Order
}

// Criteria builds the filter criteria.
func (q Query) Criteria() filter.Criteria {
	return filter.New(
		filter.Text(q.Search),
		filter.Equals(FieldContinent, q.Continent),
	)
}

// SortSpec resolves the sort leniently; ok is false for an unknown key.
func (q Query) SortSpec() (sortkey.Spec, bool) {
	return Sorts.Resolve(q.Sort, q.Order)
}

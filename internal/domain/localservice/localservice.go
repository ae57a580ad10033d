// Package localservice models nearby help: clinics, lawyers, offices, banks, transit.
package localservice

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// Record field names.
const (
	FieldName      = "name"
	FieldCategory  = "category"
	FieldLanguages = "languages"
	FieldDistance  = "distance"
	FieldRating    = "rating"
	FieldOpen      = "open"
	FieldBooking   = "booking"
)

// Service is a local provider. Category holds a ServiceCategory ID.
type Service struct {
	ID          string
	Name        string
	Category    string
	Address     string
	DistanceKm  float64
	Phone       string
	Rating      float64
	ReviewCount int
	Open        bool
	Languages   []string
	Booking     bool
	Location    geo.Point
}

// Validate checks the fields the finder relies on.
func (s Service) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("service ID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("service %q: name is required", s.ID)
	}
	if s.Category == "" {
		return fmt.Errorf("service %q: category is required", s.ID)
	}
	if !s.Location.Valid() {
		return fmt.Errorf("service %q: invalid location", s.ID)
	}
	return nil
}

// Record projects the service for the query pipeline. categoryName is searched
// alongside the service name.
func (s Service) Record(categoryName string) record.Record {
	rec, _ := record.New(s.ID,
		record.Searchable(s.Name, s.Category, categoryName),
		record.Category(FieldName, s.Name),
		record.Category(FieldCategory, s.Category),
		record.Values(FieldLanguages, s.Languages...),
		record.Number(FieldDistance, s.DistanceKm),
		record.Number(FieldRating, s.Rating),
		record.Flag(FieldOpen, s.Open),
		record.Flag(FieldBooking, s.Booking),
	)
	return rec
}

// ServiceCategory is a browsable group of services.
type ServiceCategory struct {
	ID         string
	Name       string
	Count      int
	HasUpdates bool
}

// EmergencyContact is a number to call in an emergency.
type EmergencyContact struct {
	ID          string
	Name        string
	Description string
	Number      string
}

// Sort keys.
const (
	SortDistance sortkey.Key = "distance"
	SortRating   sortkey.Key = "rating"
	SortName     sortkey.Key = "name"
)

// Sorts is the finder sort registry; nearest first is the default.
var Sorts = sortkey.MustRegistry(
	sortkey.Entry{Key: SortDistance, Compare: sortkey.ByNumber(FieldDistance)},
	sortkey.Entry{Key: SortRating, Compare: sortkey.ByNumber(FieldRating)},
	sortkey.Entry{Key: SortName, Compare: sortkey.ByString(FieldName)},
)

// Query is the finder filter and sort state. Nil pointers and empty values are unconstrained.
type Query struct {
	Search      string
	Category    string
	Languages   []string
	OpenNow     *bool
	HasBooking  *bool
	MaxDistance *float64
	Origin      *geo.Point
	Sort        sortkey.Key
	Order       sortkey.Order
}

// Criteria builds the filter criteria.
func (q Query) Criteria() filter.Criteria {
	conds := []filter.Condition{
		filter.Text(q.Search),
		filter.Equals(FieldCategory, q.Category),
		filter.AnyOf(FieldLanguages, q.Languages...),
	}
	if q.OpenNow != nil {
		conds = append(conds, filter.Flag(FieldOpen, *q.OpenNow))
	}
	if q.HasBooking != nil {
		conds = append(conds, filter.Flag(FieldBooking, *q.HasBooking))
	}
	if q.MaxDistance != nil {
		conds = append(conds, filter.AtMost(FieldDistance, *q.MaxDistance))
	}
	return filter.New(conds...)
}

// SortSpec resolves the sort leniently; ok is false for an unknown key.
func (q Query) SortSpec() (sortkey.Spec, bool) {
	return Sorts.Resolve(q.Sort, q.Order)
}

// Prepare applies the query origin to items, returning a fresh slice.
func (q Query) Prepare(items []Service) []Service {
	out := slices.Clone(items)
	if q.Origin == nil {
		return out
	}
	for i := range out {
		out[i].DistanceKm = geo.RoundKm(geo.DistanceKm(*q.Origin, out[i].Location))
	}
	return out
}

// Viewer returns the record projection for services, resolving category names from cats.
func Viewer(cats []ServiceCategory) func(Service) record.Record {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return func(s Service) record.Record { return s.Record(names[s.Category]) }
}

package experience

import (
	"slices"

	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
)

// Sort keys.
const (
	SortRecommended sortkey.Key = "recommended"
	SortRating      sortkey.Key = "rating"
	SortDistance    sortkey.Key = "distance"
	SortPrice       sortkey.Key = "price"
	SortName        sortkey.Key = "name"
)

// Sorts is the explore hub sort registry; recommended (most popular first) is the default.
var Sorts = sortkey.MustRegistry(
	sortkey.Entry{Key: SortRecommended, Compare: sortkey.ByNumber(FieldPopularity), Desc: true},
	sortkey.Entry{Key: SortRating, Compare: sortkey.ByNumber(FieldRating)},
	sortkey.Entry{Key: SortDistance, Compare: sortkey.ByNumber(FieldDistance)},
	sortkey.Entry{Key: SortPrice, Compare: sortkey.ByRank(FieldPriceRange, rank.PriceTier)},
	sortkey.Entry{Key: SortName, Compare: sortkey.ByString(FieldTitle)},
)

// AccessibilityWheelchair is the accessibility filter value.
const AccessibilityWheelchair = "wheelchair"

// Feature filter values.
const (
	FeatureBookable = "bookable"
	FeatureOffers   = "offers"
	FeatureIndoor   = "indoor"
)

var featureFields = map[string]string{
	FeatureBookable: FieldBookable,
	FeatureOffers:   FieldOffers,
	FeatureIndoor:   FieldIndoor,
}

// Query is the explore hub filter and sort state. Zero values are unconstrained.
type Query struct {
	Search        string
	Categories    []string
	PriceRanges   []string
	Durations     []string
	Accessibility []string
	// Features requires every listed feature; unknown features are ignored.
	Features    []string
	MinRating   *float64
	MaxDistance *float64
	// Origin, when set, replaces catalog distances with distances from this point.
	Origin *geo.Point
	Sort   sortkey.Key
	Order  sortkey.Order
}

// Criteria builds the filter criteria.
func (q Query) Criteria() filter.Criteria {
	conds := []filter.Condition{
		filter.Text(q.Search),
		filter.AnyOf(FieldCategory, q.Categories...),
		filter.AnyOf(FieldPriceRange, q.PriceRanges...),
		filter.AnyOf(FieldDuration, q.Durations...),
	}
	if slices.Contains(q.Accessibility, AccessibilityWheelchair) {
		conds = append(conds, filter.Flag(FieldAccessible, true))
	}
	for _, f := range q.Features {
		if field, ok := featureFields[f]; ok {
			conds = append(conds, filter.Flag(field, true))
		}
	}
	if q.MinRating != nil {
		conds = append(conds, filter.AtLeast(FieldRating, *q.MinRating))
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
func (q Query) Prepare(items []Experience) []Experience {
	out := slices.Clone(items)
	if q.Origin == nil {
		return out
	}
	for i := range out {
		out[i] = out[i].WithDistanceFrom(*q.Origin)
	}
	return out
}

// Package experience models the tourist activities offered by the explore hub.
package experience

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// PriceRange is the cost tier of an experience.
type PriceRange string

// Price tiers, cheapest first.
const (
	PriceFree     PriceRange = "free"
	PriceBudget   PriceRange = "budget"
	PriceModerate PriceRange = "moderate"
	PricePremium  PriceRange = "premium"
)

// IsValid checks if the tier is one of the supported values.
func (p PriceRange) IsValid() bool { return rank.PriceTier.Contains(string(p)) }

// DurationBucket groups free-form durations ("90 minutes", "Half day") for filtering.
type DurationBucket string

// Duration buckets.
const (
	DurationQuick    DurationBucket = "quick"
	DurationHalfDay  DurationBucket = "half-day"
	DurationFullDay  DurationBucket = "full-day"
	DurationMultiDay DurationBucket = "multi-day"
)

// Record field names.
const (
	FieldTitle      = "title"
	FieldCategory   = "category"
	FieldPriceRange = "priceRange"
	FieldDuration   = "duration"
	FieldTags       = "tags"
	FieldRating     = "rating"
	FieldDistance   = "distance"
	FieldPopularity = "popularity"
	FieldBookable   = "bookable"
	FieldAccessible = "accessible"
	FieldIndoor     = "indoor"
	FieldOffers     = "offers"
)

// Experience is a bookable or free activity near the user.
type Experience struct {
	ID               string
	Title            string
	Description      string
	Category         string
	Rating           float64
	ReviewCount      int
	Duration         string
	DistanceKm       float64
	PriceRange       PriceRange
	Tags             []string
	Bookable         bool
	Accessible       bool
	WeatherDependent bool
	SpecialOffer     string
	Location         geo.Point
}

// Validate checks the fields the explore hub relies on.
func (e Experience) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("experience ID is required")
	}
	if e.Title == "" {
		return fmt.Errorf("experience %q: title is required", e.ID)
	}
	if e.PriceRange != "" && !e.PriceRange.IsValid() {
		return fmt.Errorf("experience %q: unknown price range %q", e.ID, e.PriceRange)
	}
	if e.Rating < 0 || e.Rating > 5 {
		return fmt.Errorf("experience %q: rating %g out of range [0,5]", e.ID, e.Rating)
	}
	if !e.Location.Valid() {
		return fmt.Errorf("experience %q: invalid location", e.ID)
	}
	return nil
}

// Popularity is the recommendation score: rating weighted by review count.
func (e Experience) Popularity() float64 { return e.Rating * float64(e.ReviewCount) }

// Record projects the experience for the query pipeline.
// Searchable fields are title, description, then each tag.
func (e Experience) Record() record.Record {
	searchable := append([]string{e.Title, e.Description}, e.Tags...)
	opts := []record.Option{
		record.Searchable(searchable...),
		record.Category(FieldTitle, e.Title),
		record.Category(FieldCategory, e.Category),
		record.Category(FieldPriceRange, string(e.PriceRange)),
		record.Values(FieldTags, e.Tags...),
		record.Number(FieldRating, e.Rating),
		record.Number(FieldDistance, e.DistanceKm),
		record.Number(FieldPopularity, e.Popularity()),
		record.Flag(FieldBookable, e.Bookable),
		record.Flag(FieldAccessible, e.Accessible),
		record.Flag(FieldIndoor, !e.WeatherDependent),
		record.Flag(FieldOffers, e.SpecialOffer != ""),
	}
	if b, ok := ParseDuration(e.Duration); ok {
		opts = append(opts, record.Category(FieldDuration, string(b)))
	}
	rec, _ := record.New(e.ID, opts...)
	return rec
}

// WithDistanceFrom returns a copy whose DistanceKm is measured from origin.
func (e Experience) WithDistanceFrom(origin geo.Point) Experience {
	e.DistanceKm = geo.RoundKm(geo.DistanceKm(origin, e.Location))
	return e
}

var amountRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseDuration buckets a free-form duration. Ranges use their upper bound:
// "2-4 hours" is half-day. Up to 2 hours is quick, up to 6 hours half-day.
func ParseDuration(s string) (DurationBucket, bool) {
	d := strings.ToLower(strings.TrimSpace(s))
	if d == "" {
		return "", false
	}
	switch {
	case strings.Contains(d, "multi"):
		return DurationMultiDay, true
	case strings.Contains(d, "half"):
		return DurationHalfDay, true
	}

	amounts := amountRe.FindAllString(d, -1)
	if len(amounts) == 0 {
		if strings.Contains(d, "day") {
			return DurationFullDay, true
		}
		return "", false
	}
	n, err := strconv.ParseFloat(amounts[len(amounts)-1], 64)
	if err != nil {
		return "", false
	}

	var hours float64
	switch {
	case strings.Contains(d, "day"):
		if n > 1 {
			return DurationMultiDay, true
		}
		return DurationFullDay, true
	case strings.Contains(d, "min"):
		hours = n / 60
	case strings.Contains(d, "h"):
		hours = n
	default:
		return "", false
	}

	switch {
	case hours <= 2:
		return DurationQuick, true
	case hours <= 6:
		return DurationHalfDay, true
	default:
		return DurationFullDay, true
	}
}

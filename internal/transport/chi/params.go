package chi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
)

// Query parameters are bound in the form style with exploded arrays:
// ?tags=a&tags=b. Array values may also be comma separated (?tags=a,b).
// Unknown parameters are ignored.

// binder collects the first binding error so handlers check once.
type binder struct {
	r   *http.Request
	err error
}

// bind reads an optional parameter. dest points at a nil-able pointer
// (**float64, **bool), which stays nil when the parameter is absent.
func (b *binder) bind(name string, dest any) {
	if b.err != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, name, b.r.URL.Query(), dest); err != nil {
		b.err = fmt.Errorf("%w: parameter %q: %w", domain.ErrInvalidQuery, name, err)
	}
}

// bindValue reads an optional parameter into a plain value, leaving dest
// untouched when the parameter is absent.
func bindValue[T any](b *binder, name string, dest *T) {
	var v *T
	b.bind(name, &v)
	if v != nil {
		*dest = *v
	}
}

func (b *binder) list(name string) []string {
	var raw []string
	bindValue(b, name, &raw)
	return splitCSV(raw)
}

func (b *binder) sort() (sortkey.Key, sortkey.Order) {
	var key, order string
	bindValue(b, "sort", &key)
	bindValue(b, "order", &order)
	return sortkey.Key(strings.TrimSpace(key)), sortkey.ParseOrder(order)
}

// origin reads lat and lng; both or neither must be present.
func (b *binder) origin() *geo.Point {
	var lat, lng *float64
	b.bind("lat", &lat)
	b.bind("lng", &lng)
	if b.err != nil || (lat == nil && lng == nil) {
		return nil
	}
	if lat == nil || lng == nil {
		b.err = fmt.Errorf("%w: lat and lng must be given together", domain.ErrInvalidQuery)
		return nil
	}
	p, err := geo.NewPoint(*lat, *lng)
	if err != nil {
		b.err = fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
		return nil
	}
	return &p
}

// asOf reads the now override: RFC 3339, or a plain date in loc.
func (b *binder) asOf(loc *time.Location) time.Time {
	var raw string
	bindValue(b, "now", &raw)
	if b.err != nil || raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		b.err = fmt.Errorf("%w: parameter \"now\" must be RFC 3339 or YYYY-MM-DD", domain.ErrInvalidQuery)
		return time.Time{}
	}
	return t
}

func documentQueryFromRequest(r *http.Request, loc *time.Location) (requirement.Query, error) {
	b := &binder{r: r}
	var q requirement.Query
	bindValue(b, "search", &q.Search)
	bindValue(b, "status", &q.Status)
	bindValue(b, "category", &q.Category)
	bindValue(b, "priority", &q.Priority)
	q.Sort, q.Order = b.sort()
	q.Now = b.asOf(loc)
	return q, b.err
}

func deadlineParamsFromRequest(r *http.Request, loc *time.Location) (limit int, now time.Time, err error) {
	b := &binder{r: r}
	bindValue(b, "limit", &limit)
	now = b.asOf(loc)
	if b.err == nil && limit < 0 {
		b.err = fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidQuery)
	}
	return limit, now, b.err
}

func experienceQueryFromRequest(r *http.Request) (experience.Query, error) {
	b := &binder{r: r}
	var q experience.Query
	bindValue(b, "search", &q.Search)
	q.Categories = b.list("categories")
	q.PriceRanges = b.list("price_range")
	q.Durations = b.list("duration")
	q.Accessibility = b.list("accessibility")
	q.Features = b.list("features")
	b.bind("min_rating", &q.MinRating)
	b.bind("max_distance", &q.MaxDistance)
	q.Origin = b.origin()
	q.Sort, q.Order = b.sort()
	return q, b.err
}

func serviceQueryFromRequest(r *http.Request) (localservice.Query, error) {
	b := &binder{r: r}
	var q localservice.Query
	bindValue(b, "search", &q.Search)
	bindValue(b, "category", &q.Category)
	q.Languages = b.list("languages")
	b.bind("open_now", &q.OpenNow)
	b.bind("has_booking", &q.HasBooking)
	b.bind("max_distance", &q.MaxDistance)
	q.Origin = b.origin()
	q.Sort, q.Order = b.sort()
	return q, b.err
}

func countryQueryFromRequest(r *http.Request) (country.Query, error) {
	b := &binder{r: r}
	var q country.Query
	bindValue(b, "search", &q.Search)
	bindValue(b, "continent", &q.Continent)
	q.Sort, q.Order = b.sort()
	return q, b.err
}

func lawQueryFromRequest(r *http.Request) (law.Query, error) {
	b := &binder{r: r}
	var q law.Query
	bindValue(b, "search", &q.Search)
	q.Filters = b.list("filters")
	return q, b.err
}

func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

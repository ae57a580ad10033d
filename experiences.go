package safeexplore

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
)

// ExperienceQuery is a fluent builder over tourist experiences.
type ExperienceQuery struct {
	client *Client
	q      experience.Query
	err    error
}

// Experiences starts an experience query, recommended first by default.
func (c *Client) Experiences() *ExperienceQuery {
	return &ExperienceQuery{client: c}
}

// Search matches title, description and tags.
func (b *ExperienceQuery) Search(text string) *ExperienceQuery {
	b.q.Search = text
	return b
}

// Categories keeps experiences in any of the categories.
func (b *ExperienceQuery) Categories(ids ...string) *ExperienceQuery {
	b.q.Categories = append(b.q.Categories, ids...)
	return b
}

// PriceRanges keeps experiences in any of the tiers (free, budget, moderate, premium).
func (b *ExperienceQuery) PriceRanges(tiers ...string) *ExperienceQuery {
	b.q.PriceRanges = append(b.q.PriceRanges, tiers...)
	return b
}

// Durations keeps experiences in any of the buckets (quick, half-day, full-day, multi-day).
func (b *ExperienceQuery) Durations(buckets ...string) *ExperienceQuery {
	b.q.Durations = append(b.q.Durations, buckets...)
	return b
}

// Accessibility keeps experiences matching any of the accessibility options.
func (b *ExperienceQuery) Accessibility(opts ...string) *ExperienceQuery {
	b.q.Accessibility = append(b.q.Accessibility, opts...)
	return b
}

// Features requires every listed feature.
func (b *ExperienceQuery) Features(features ...string) *ExperienceQuery {
	b.q.Features = append(b.q.Features, features...)
	return b
}

// MinRating drops experiences rated below r.
func (b *ExperienceQuery) MinRating(r float64) *ExperienceQuery {
	b.q.MinRating = &r
	return b
}

// MaxDistance drops experiences farther than km.
func (b *ExperienceQuery) MaxDistance(km float64) *ExperienceQuery {
	b.q.MaxDistance = &km
	return b
}

// Near measures distances from lat/lng instead of the catalog values.
func (b *ExperienceQuery) Near(lat, lng float64) *ExperienceQuery {
	p, err := geo.NewPoint(lat, lng)
	if err != nil {
		b.err = fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		return b
	}
	b.q.Origin = &p
	return b
}

// SortBy selects the sort key (recommended, rating, distance, price, name).
func (b *ExperienceQuery) SortBy(key string) *ExperienceQuery {
	b.q.Sort = sortkey.Key(key)
	return b
}

// Asc forces ascending order.
func (b *ExperienceQuery) Asc() *ExperienceQuery {
	b.q.Order = sortkey.OrderAsc
	return b
}

// Desc forces descending order.
func (b *ExperienceQuery) Desc() *ExperienceQuery {
	b.q.Order = sortkey.OrderDesc
	return b
}

// Do runs the query.
func (b *ExperienceQuery) Do(ctx context.Context) (Result[Experience], error) {
	if b.err != nil {
		return Result[Experience]{}, fmt.Errorf("experiences: %w", b.err)
	}
	res, err := b.client.explore.List(b.client.ctx(ctx), b.q)
	if err != nil {
		return Result[Experience]{}, fmt.Errorf("experiences: %w", err)
	}
	return fromListing(res), nil
}

// Experience returns one experience by id.
func (c *Client) Experience(ctx context.Context, id string) (Experience, error) {
	e, err := c.explore.Get(c.ctx(ctx), id)
	if err != nil {
		return Experience{}, fmt.Errorf("experience: %w", err)
	}
	return e, nil
}

package safeexplore

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
)

// CountryQuery is a fluent builder over the selectable countries.
type CountryQuery struct {
	client *Client
	q      country.Query
}

// Countries starts a country query, alphabetical by name by default.
func (c *Client) Countries() *CountryQuery {
	return &CountryQuery{client: c}
}

// Search matches the country name or code, ignoring case.
func (b *CountryQuery) Search(text string) *CountryQuery {
	b.q.Search = text
	return b
}

// Continent keeps countries on one continent ("Europe", "North America").
func (b *CountryQuery) Continent(name string) *CountryQuery {
	b.q.Continent = name
	return b
}

// SortBy selects the sort key (name, code, continent).
func (b *CountryQuery) SortBy(key string) *CountryQuery {
	b.q.Sort = sortkey.Key(key)
	return b
}

// Asc forces ascending order.
func (b *CountryQuery) Asc() *CountryQuery {
	b.q.Order = sortkey.OrderAsc
	return b
}

// Desc forces descending order.
func (b *CountryQuery) Desc() *CountryQuery {
	b.q.Order = sortkey.OrderDesc
	return b
}

// Do runs the query.
func (b *CountryQuery) Do(ctx context.Context) (Result[Country], error) {
	res, err := b.client.countries.List(b.client.ctx(ctx), b.q)
	if err != nil {
		return Result[Country]{}, fmt.Errorf("countries: %w", err)
	}
	return fromListing(res), nil
}

// Country returns one country by code, ignoring case.
func (c *Client) Country(ctx context.Context, code string) (Country, error) {
	ct, err := c.countries.Get(c.ctx(ctx), code)
	if err != nil {
		return Country{}, fmt.Errorf("country: %w", err)
	}
	return ct, nil
}

// FeaturedDestinations returns the cities featured for a user type
// ("tourist" or anything else for the relocation picks).
func (c *Client) FeaturedDestinations(ctx context.Context, userType string) ([]Destination, error) {
	dests, err := c.countries.Featured(c.ctx(ctx), userType)
	if err != nil {
		return nil, fmt.Errorf("featured destinations: %w", err)
	}
	return dests, nil
}

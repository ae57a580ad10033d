package safeexplore

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
)

// ServiceQuery is a fluent builder over local services.
type ServiceQuery struct {
	client *Client
	q      localservice.Query
	err    error
}

// Services starts a local services query, nearest first by default.
func (c *Client) Services() *ServiceQuery {
	return &ServiceQuery{client: c}
}

// Search matches the service name and its category.
func (b *ServiceQuery) Search(text string) *ServiceQuery {
	b.q.Search = text
	return b
}

// Category keeps one service category.
func (b *ServiceQuery) Category(id string) *ServiceQuery {
	b.q.Category = id
	return b
}

// Languages keeps services speaking any of the languages.
func (b *ServiceQuery) Languages(langs ...string) *ServiceQuery {
	b.q.Languages = append(b.q.Languages, langs...)
	return b
}

// OpenNow keeps services whose open flag equals open.
func (b *ServiceQuery) OpenNow(open bool) *ServiceQuery {
	b.q.OpenNow = &open
	return b
}

// Booking keeps services whose online booking flag equals booking.
func (b *ServiceQuery) Booking(booking bool) *ServiceQuery {
	b.q.HasBooking = &booking
	return b
}

// MaxDistance drops services farther than km.
func (b *ServiceQuery) MaxDistance(km float64) *ServiceQuery {
	b.q.MaxDistance = &km
	return b
}

// Near measures distances from lat/lng instead of the catalog values.
func (b *ServiceQuery) Near(lat, lng float64) *ServiceQuery {
	p, err := geo.NewPoint(lat, lng)
	if err != nil {
		b.err = fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		return b
	}
	b.q.Origin = &p
	return b
}

// SortBy selects the sort key (distance, rating, name).
func (b *ServiceQuery) SortBy(key string) *ServiceQuery {
	b.q.Sort = sortkey.Key(key)
	return b
}

// Asc forces ascending order.
func (b *ServiceQuery) Asc() *ServiceQuery {
	b.q.Order = sortkey.OrderAsc
	return b
}

// Desc forces descending order.
func (b *ServiceQuery) Desc() *ServiceQuery {
	b.q.Order = sortkey.OrderDesc
	return b
}

// Do runs the query.
func (b *ServiceQuery) Do(ctx context.Context) (Result[Service], error) {
	if b.err != nil {
		return Result[Service]{}, fmt.Errorf("services: %w", b.err)
	}
	res, err := b.client.finder.List(b.client.ctx(ctx), b.q)
	if err != nil {
		return Result[Service]{}, fmt.Errorf("services: %w", err)
	}
	return fromListing(res), nil
}

// ServiceCategories returns the local service categories.
func (c *Client) ServiceCategories(ctx context.Context) ([]ServiceCategory, error) {
	cats, err := c.finder.Categories(c.ctx(ctx))
	if err != nil {
		return nil, fmt.Errorf("service categories: %w", err)
	}
	return cats, nil
}

// EmergencyContacts returns the emergency numbers.
func (c *Client) EmergencyContacts(ctx context.Context) ([]EmergencyContact, error) {
	contacts, err := c.finder.EmergencyContacts(c.ctx(ctx))
	if err != nil {
		return nil, fmt.Errorf("emergency contacts: %w", err)
	}
	return contacts, nil
}

// EmergencyPhrases returns every emergency phrase book.
func (c *Client) EmergencyPhrases(ctx context.Context) ([]PhraseBook, error) {
	books, err := c.finder.PhraseBooks(c.ctx(ctx))
	if err != nil {
		return nil, fmt.Errorf("emergency phrases: %w", err)
	}
	return books, nil
}

// PhraseBook returns the emergency phrases for a language name or locale.
func (c *Client) PhraseBook(ctx context.Context, language string) (PhraseBook, error) {
	b, err := c.finder.PhraseBook(c.ctx(ctx), language)
	if err != nil {
		return PhraseBook{}, fmt.Errorf("emergency phrases: %w", err)
	}
	return b, nil
}

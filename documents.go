package safeexplore

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
)

// DocumentQuery is a fluent builder over the document requirements.
type DocumentQuery struct {
	client *Client
	q      requirement.Query
}

// Documents starts a document query. With no constraints it returns every
// document, earliest due date first.
func (c *Client) Documents() *DocumentQuery {
	return &DocumentQuery{client: c}
}

// Search matches name and description, ignoring case.
func (b *DocumentQuery) Search(text string) *DocumentQuery {
	b.q.Search = text
	return b
}

// Status keeps one status; "overdue" keeps open documents past their due date.
func (b *DocumentQuery) Status(status string) *DocumentQuery {
	b.q.Status = status
	return b
}

// Category keeps one document category.
func (b *DocumentQuery) Category(id string) *DocumentQuery {
	b.q.Category = id
	return b
}

// Priority keeps one priority.
func (b *DocumentQuery) Priority(p string) *DocumentQuery {
	b.q.Priority = p
	return b
}

// SortBy selects the sort key (due-date, priority, status, name, category).
func (b *DocumentQuery) SortBy(key string) *DocumentQuery {
	b.q.Sort = sortkey.Key(key)
	return b
}

// Asc forces ascending order.
func (b *DocumentQuery) Asc() *DocumentQuery {
	b.q.Order = sortkey.OrderAsc
	return b
}

// Desc forces descending order.
func (b *DocumentQuery) Desc() *DocumentQuery {
	b.q.Order = sortkey.OrderDesc
	return b
}

// AsOf evaluates overdue against t instead of the client clock.
func (b *DocumentQuery) AsOf(t time.Time) *DocumentQuery {
	b.q.Now = t
	return b
}

// Do runs the query.
func (b *DocumentQuery) Do(ctx context.Context) (Result[Document], error) {
	res, err := b.client.tracker.List(b.client.ctx(ctx), b.q)
	if err != nil {
		return Result[Document]{}, fmt.Errorf("documents: %w", err)
	}
	return fromListing(res), nil
}

// Document returns one document by id.
func (c *Client) Document(ctx context.Context, id string) (Document, error) {
	d, err := c.tracker.Get(c.ctx(ctx), id)
	if err != nil {
		return Document{}, fmt.Errorf("document: %w", err)
	}
	return d, nil
}

// Progress summarizes completion across all documents.
func (c *Client) Progress(ctx context.Context) (Progress, error) {
	p, err := c.tracker.Progress(c.ctx(ctx))
	if err != nil {
		return Progress{}, fmt.Errorf("progress: %w", err)
	}
	return p, nil
}

// Deadlines returns the earliest open deadlines. limit <= 0 uses the client default.
func (c *Client) Deadlines(ctx context.Context, limit int) ([]Deadline, error) {
	ds, err := c.tracker.Deadlines(c.ctx(ctx), limit, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("deadlines: %w", err)
	}
	return ds, nil
}

// DocumentCategories returns per-category completion.
func (c *Client) DocumentCategories(ctx context.Context) ([]DocumentCategory, error) {
	cats, err := c.tracker.Categories(c.ctx(ctx))
	if err != nil {
		return nil, fmt.Errorf("document categories: %w", err)
	}
	return cats, nil
}

package safeexplore

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain/law"
)

// LawQuery is a fluent builder over the law guide.
type LawQuery struct {
	client *Client
	q      law.Query
}

// Laws starts a law guide query.
func (c *Client) Laws() *LawQuery {
	return &LawQuery{client: c}
}

// Search matches title, description and penalties.
func (b *LawQuery) Search(text string) *LawQuery {
	b.q.Search = text
	return b
}

// Filter keeps laws matching any of the severities or categories.
func (b *LawQuery) Filter(values ...string) *LawQuery {
	b.q.Filters = append(b.q.Filters, values...)
	return b
}

// Do runs the query. Groups keep guide order; empty groups are dropped.
func (b *LawQuery) Do(ctx context.Context) (LawGuide, error) {
	g, err := b.client.laws.Guide(b.client.ctx(ctx), b.q)
	if err != nil {
		return LawGuide{}, fmt.Errorf("laws: %w", err)
	}
	return g, nil
}

// Law returns one law by id.
func (c *Client) Law(ctx context.Context, id string) (Law, error) {
	l, err := c.laws.Get(c.ctx(ctx), id)
	if err != nil {
		return Law{}, fmt.Errorf("law: %w", err)
	}
	return l, nil
}

package safeexplore

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/pipeline"
)

// LiveQuery re-runs a document query as its input changes, debounced so that
// rapid updates (typing) produce one run with the latest input.
type LiveQuery struct {
	client    *Client
	ctx       context.Context
	debouncer *pipeline.Debouncer
	onResult  func(Result[Document], error)
}

// LiveDocuments starts a live document query. onResult receives every result
// on a timer goroutine; it must not block for long.
func (c *Client) LiveDocuments(ctx context.Context, onResult func(Result[Document], error)) *LiveQuery {
	return &LiveQuery{
		client:    c,
		ctx:       ctx,
		debouncer: pipeline.NewDebouncer(c.debounce),
		onResult:  onResult,
	}
}

// Update schedules q, replacing any update still waiting. It reports false
// once the live query is stopped.
func (l *LiveQuery) Update(q *DocumentQuery) bool {
	snapshot := *q
	snapshot.client = l.client
	return l.debouncer.Trigger(func() {
		if l.ctx.Err() != nil {
			return
		}
		l.onResult(snapshot.Do(l.ctx))
	})
}

// Pending reports whether an update is waiting to run.
func (l *LiveQuery) Pending() bool { return l.debouncer.Pending() }

// Stop drops any waiting update and rejects further ones.
func (l *LiveQuery) Stop() { l.debouncer.Stop() }

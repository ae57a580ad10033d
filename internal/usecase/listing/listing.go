// Package listing runs the query pipeline for the catalog use cases and
// records its logs and metrics in one place.
package listing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
	"github.com/kailas-cloud/safeexplore/internal/logger"
	"github.com/kailas-cloud/safeexplore/internal/metrics"
	"github.com/kailas-cloud/safeexplore/internal/pipeline"
)

// Result is one page of query output.
type Result[T any] struct {
	Items []T
	// Total is the collection size before filtering.
	Total int
	// SortKey is the key actually applied; empty when SortApplied is false.
	SortKey     sortkey.Key
	SortApplied bool
}

// Request describes one pipeline run.
type Request struct {
	// Catalog labels logs and metrics (documents, experiences, services, laws, countries).
	Catalog string
	// RequestedSort is the key the caller asked for, for logging.
	RequestedSort sortkey.Key
	Criteria      filter.Criteria
	Spec          sortkey.Spec
	SortApplied   bool
}

// Run filters and sorts items, observing the run.
func Run[T any](ctx context.Context, items []T, view func(T) record.Record, req Request) Result[T] {
	start := time.Now()
	out := pipeline.Select(items, view, req.Criteria, req.Spec)
	metrics.ObservePipeline(req.Catalog, start, len(out), req.SortApplied)

	log := logger.FromContext(ctx)
	if !req.SortApplied {
		log.Warn("unknown sort key, keeping input order",
			zap.String("catalog", req.Catalog),
			zap.String("sort", string(req.RequestedSort)),
		)
	}
	log.Debug("pipeline run",
		zap.String("catalog", req.Catalog),
		zap.Int("conditions", req.Criteria.Len()),
		zap.String("sort", string(req.Spec.Key())),
		zap.Bool("desc", req.Spec.Desc()),
		zap.Int("total", len(items)),
		zap.Int("results", len(out)),
		zap.Duration("took", time.Since(start)),
	)

	res := Result[T]{Items: out, Total: len(items), SortApplied: req.SortApplied}
	if req.SortApplied {
		res.SortKey = req.Spec.Key()
	}
	return res
}

// Package laws serves the local laws and regulations guide.
package laws

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/logger"
	"github.com/kailas-cloud/safeexplore/internal/metrics"
)

// Guide is the narrowed law guide.
type Guide struct {
	Groups []law.GroupResult
	// TotalLaws and CriticalLaws count what survived the query.
	TotalLaws    int
	CriticalLaws int
}

// Service queries the law guide.
type Service struct {
	catalog Catalog
}

// New creates a laws service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Guide narrows every group by q, keeping group order and dropping empty groups.
func (s *Service) Guide(ctx context.Context, q law.Query) (Guide, error) {
	groups, err := s.catalog.LawGroups(ctx)
	if err != nil {
		return Guide{}, fmt.Errorf("load law groups: %w", err)
	}

	start := time.Now()
	results := law.Apply(groups, q)
	total, critical := law.Totals(results)
	metrics.ObservePipeline("laws", start, total, true)

	logger.FromContext(ctx).Debug("pipeline run",
		zap.String("catalog", "laws"),
		zap.Int("filters", len(q.Filters)),
		zap.Int("groups", len(results)),
		zap.Int("results", total),
		zap.Duration("took", time.Since(start)),
	)

	return Guide{Groups: results, TotalLaws: total, CriticalLaws: critical}, nil
}

// Get returns one law or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (law.Law, error) {
	groups, err := s.catalog.LawGroups(ctx)
	if err != nil {
		return law.Law{}, fmt.Errorf("load law groups: %w", err)
	}
	for _, g := range groups {
		for _, l := range g.Laws {
			if l.ID == id {
				return l, nil
			}
		}
	}
	return law.Law{}, fmt.Errorf("law %q: %w", id, domain.ErrNotFound)
}

// Package explore serves the tourist explore hub.
package explore

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

// Service queries experiences.
type Service struct {
	catalog Catalog
}

// New creates an explore service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List filters and sorts experiences. With q.Origin set, distances are
// recomputed from that point before filtering.
func (s *Service) List(ctx context.Context, q experience.Query) (listing.Result[experience.Experience], error) {
	items, err := s.catalog.Experiences(ctx)
	if err != nil {
		return listing.Result[experience.Experience]{}, fmt.Errorf("load experiences: %w", err)
	}

	spec, applied := q.SortSpec()
	return listing.Run(ctx, q.Prepare(items), experience.Experience.Record, listing.Request{
		Catalog:       "experiences",
		RequestedSort: q.Sort,
		Criteria:      q.Criteria(),
		Spec:          spec,
		SortApplied:   applied,
	}), nil
}

// Get returns one experience or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (experience.Experience, error) {
	items, err := s.catalog.Experiences(ctx)
	if err != nil {
		return experience.Experience{}, fmt.Errorf("load experiences: %w", err)
	}
	for _, e := range items {
		if e.ID == id {
			return e, nil
		}
	}
	return experience.Experience{}, fmt.Errorf("experience %q: %w", id, domain.ErrNotFound)
}

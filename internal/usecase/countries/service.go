// Package countries serves the country and city selector.
package countries

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

// Service queries countries.
type Service struct {
	catalog Catalog
}

// New creates a countries service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List filters and sorts countries. Text search covers the name and the code.
func (s *Service) List(ctx context.Context, q country.Query) (listing.Result[country.Country], error) {
	items, err := s.catalog.Countries(ctx)
	if err != nil {
		return listing.Result[country.Country]{}, fmt.Errorf("load countries: %w", err)
	}
	spec, applied := q.SortSpec()
	return listing.Run(ctx, items, country.View, listing.Request{
		Catalog:       "countries",
		RequestedSort: q.Sort,
		Criteria:      q.Criteria(),
		Spec:          spec,
		SortApplied:   applied,
	}), nil
}

// Get returns the country with code, ignoring case.
func (s *Service) Get(ctx context.Context, code string) (country.Country, error) {
	items, err := s.catalog.Countries(ctx)
	if err != nil {
		return country.Country{}, fmt.Errorf("load countries: %w", err)
	}
	c, ok := country.Find(items, code)
	if !ok {
		return country.Country{}, fmt.Errorf("country %q: %w", code, domain.ErrNotFound)
	}
	return c, nil
}

// Featured returns the destinations pitched to userType. Tourists see sightseeing
// picks, every other user type sees the relocation picks.
func (s *Service) Featured(ctx context.Context, userType string) ([]country.Destination, error) {
	dests, err := s.catalog.FeaturedDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured destinations: %w", err)
	}
	return country.Featured(dests, country.ParseAudience(userType)), nil
}

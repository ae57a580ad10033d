// Package finder serves the local services finder and the emergency page.
package finder

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

// Service queries local services.
type Service struct {
	catalog Catalog
}

// New creates a finder service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List filters and sorts services. Text search covers the service name and
// its category name.
func (s *Service) List(ctx context.Context, q localservice.Query) (listing.Result[localservice.Service], error) {
	items, err := s.catalog.Services(ctx)
	if err != nil {
		return listing.Result[localservice.Service]{}, fmt.Errorf("load services: %w", err)
	}
	cats, err := s.catalog.ServiceCategories(ctx)
	if err != nil {
		return listing.Result[localservice.Service]{}, fmt.Errorf("load service categories: %w", err)
	}

	spec, applied := q.SortSpec()
	return listing.Run(ctx, q.Prepare(items), localservice.Viewer(cats), listing.Request{
		Catalog:       "services",
		RequestedSort: q.Sort,
		Criteria:      q.Criteria(),
		Spec:          spec,
		SortApplied:   applied,
	}), nil
}

// Categories returns the service categories in catalog order.
func (s *Service) Categories(ctx context.Context) ([]localservice.ServiceCategory, error) {
	cats, err := s.catalog.ServiceCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service categories: %w", err)
	}
	return cats, nil
}

// EmergencyContacts returns the emergency numbers.
func (s *Service) EmergencyContacts(ctx context.Context) ([]localservice.EmergencyContact, error) {
	contacts, err := s.catalog.EmergencyContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load emergency contacts: %w", err)
	}
	return contacts, nil
}

// PhraseBooks returns every emergency phrase book.
func (s *Service) PhraseBooks(ctx context.Context) ([]phrase.Book, error) {
	books, err := s.catalog.PhraseBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load phrase books: %w", err)
	}
	return books, nil
}

// PhraseBook returns the phrases for language, given as a name ("Spanish") or locale ("es-ES").
func (s *Service) PhraseBook(ctx context.Context, language string) (phrase.Book, error) {
	books, err := s.PhraseBooks(ctx)
	if err != nil {
		return phrase.Book{}, err
	}
	b, ok := phrase.Find(books, language)
	if !ok {
		return phrase.Book{}, fmt.Errorf("phrase book %q: %w", language, domain.ErrNotFound)
	}
	return b, nil
}

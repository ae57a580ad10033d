package finder

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
)

// Catalog supplies local services, their categories, emergency numbers and phrase books.
type Catalog interface {
	Services(ctx context.Context) ([]localservice.Service, error)
	ServiceCategories(ctx context.Context) ([]localservice.ServiceCategory, error)
	EmergencyContacts(ctx context.Context) ([]localservice.EmergencyContact, error)
	PhraseBooks(ctx context.Context) ([]phrase.Book, error)
}

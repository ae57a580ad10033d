package countries

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/country"
)

// Catalog supplies the selectable countries and featured destinations.
type Catalog interface {
	Countries(ctx context.Context) ([]country.Country, error)
	FeaturedDestinations(ctx context.Context) ([]country.Destination, error)
}

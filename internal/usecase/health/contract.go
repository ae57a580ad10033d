package health

import "context"

// StorePinger checks preference store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker checks that the seed catalog is loaded.
type CatalogChecker interface {
	HealthCheck(ctx context.Context) error
}

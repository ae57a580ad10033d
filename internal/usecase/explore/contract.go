package explore

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
)

// Catalog supplies tourist experiences.
type Catalog interface {
	Experiences(ctx context.Context) ([]experience.Experience, error)
}

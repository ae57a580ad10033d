package tracker

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
)

// Catalog supplies document requirements and their categories.
type Catalog interface {
	Documents(ctx context.Context) ([]requirement.Requirement, error)
	DocumentCategories(ctx context.Context) ([]requirement.Category, error)
}

package laws

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/law"
)

// Catalog supplies the law groups.
type Catalog interface {
	LawGroups(ctx context.Context) ([]law.Group, error)
}

package prefs

import (
	"context"

	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
)

// Repository defines the storage contract for preferences.
type Repository interface {
	Get(ctx context.Context, profile, key string) (preference.Preference, error)
	List(ctx context.Context, profile string) ([]preference.Preference, error)
	Set(ctx context.Context, p preference.Preference) error
	Delete(ctx context.Context, profile, key string) error
	Clear(ctx context.Context, profile string) error
	Profiles(ctx context.Context) ([]string, error)
}

// Countries resolves the code stored under preference.KeySelectedCountry.
type Countries interface {
	Get(ctx context.Context, code string) (country.Country, error)
}

// Package prefs handles the per-profile settings remembered between visits.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
	"github.com/kailas-cloud/safeexplore/internal/logger"
)

// Service validates and stores preferences.
type Service struct {
	repo      Repository
	countries Countries
}

// Option configures a Service.
type Option func(*Service)

// WithCountries checks selectedCountry values against the country catalog and
// stores the canonical code.
func WithCountries(c Countries) Option {
	return func(s *Service) { s.countries = c }
}

// New creates a preference service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns one preference or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, profile, key string) (preference.Preference, error) {
	if err := validate(profile, key); err != nil {
		return preference.Preference{}, err
	}
	p, err := s.repo.Get(ctx, profile, key)
	if err != nil {
		return preference.Preference{}, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

// List returns every preference of profile sorted by key. An unknown
// profile yields an empty list.
func (s *Service) List(ctx context.Context, profile string) ([]preference.Preference, error) {
	if err := preference.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	ps, err := s.repo.List(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return ps, nil
}

// Set validates and upserts a preference.
func (s *Service) Set(ctx context.Context, profile, key, value string) (preference.Preference, error) {
	value, err := s.normalize(ctx, key, value)
	if err != nil {
		return preference.Preference{}, err
	}
	p, err := preference.New(profile, key, value)
	if err != nil {
		return preference.Preference{}, fmt.Errorf("validate preference: %w", err)
	}
	if err := s.repo.Set(ctx, p); err != nil {
		return preference.Preference{}, fmt.Errorf("set preference: %w", err)
	}
	logger.FromContext(ctx).Debug("preference stored",
		zap.String("profile", profile),
		zap.String("key", key),
	)
	return p, nil
}

// Delete removes a preference. Deleting a missing key succeeds.
func (s *Service) Delete(ctx context.Context, profile, key string) error {
	if err := validate(profile, key); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, profile, key); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// Clear removes every preference of profile.
func (s *Service) Clear(ctx context.Context, profile string) error {
	if err := preference.ValidateProfile(profile); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if err := s.repo.Clear(ctx, profile); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}

// Profiles lists profiles with at least one stored preference.
func (s *Service) Profiles(ctx context.Context) ([]string, error) {
	out, err := s.repo.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

// normalize resolves a selected country to its catalog code. Empty values clear the selection.
func (s *Service) normalize(ctx context.Context, key, value string) (string, error) {
	if key != preference.KeySelectedCountry || value == "" || s.countries == nil {
		return value, nil
	}
	c, err := s.countries.Get(ctx, value)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("validate preference: %w", domain.NewPreferenceError(key, fmt.Sprintf("unknown country code %q", value)))
	case err != nil:
		return "", fmt.Errorf("resolve country: %w", err)
	}
	return c.Code, nil
}

func validate(profile, key string) error {
	if err := preference.ValidateProfile(profile); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if err := preference.ValidateKey(key); err != nil {
		return fmt.Errorf("validate key: %w", err)
	}
	return nil
}

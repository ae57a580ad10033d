package safeexplore

import (
	"context"
	"fmt"

	prefsuc "github.com/kailas-cloud/safeexplore/internal/usecase/prefs"
)

// Well-known preference keys.
const (
	PrefUserType        = "userType"
	PrefSelectedCountry = "selectedCountry"
	PrefSelectedCity    = "selectedCity"
	PrefLanguage        = "language"
)

// Preferences reads and writes the settings of one profile.
type Preferences struct {
	profile string
	svc     *prefsuc.Service
	client  *Client
}

// Get returns the value of key or ErrNotFound.
func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	pref, err := p.svc.Get(p.client.ctx(ctx), p.profile, key)
	if err != nil {
		return "", fmt.Errorf("preferences: %w", err)
	}
	return pref.Value(), nil
}

// Set stores value under key. PrefSelectedCountry takes a country code and
// stores it upper-cased; unknown codes fail with ErrInvalidPreference.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	if _, err := p.svc.Set(p.client.ctx(ctx), p.profile, key, value); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

// Delete removes key. Removing a missing key succeeds.
func (p *Preferences) Delete(ctx context.Context, key string) error {
	if err := p.svc.Delete(p.client.ctx(ctx), p.profile, key); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

// All returns every stored setting of the profile.
func (p *Preferences) All(ctx context.Context) (map[string]string, error) {
	ps, err := p.svc.List(p.client.ctx(ctx), p.profile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	out := make(map[string]string, len(ps))
	for _, pref := range ps {
		out[pref.Key()] = pref.Value()
	}
	return out, nil
}

// Clear removes every setting of the profile.
func (p *Preferences) Clear(ctx context.Context) error {
	if err := p.svc.Clear(p.client.ctx(ctx), p.profile); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

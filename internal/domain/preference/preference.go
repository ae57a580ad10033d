// Package preference holds the small per-profile settings remembered between visits
// (user type, selected country and city, language).
package preference

import (
	"regexp"

	"github.com/kailas-cloud/safeexplore/internal/domain"
)

var (
	profileRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	keyRegex     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]{0,63}$`)
)

// MaxValueSize is the maximum value size in bytes.
const MaxValueSize = 1024

// Well-known keys.
const (
	KeyUserType        = "userType"
	KeySelectedCountry = "selectedCountry"
	KeySelectedCity    = "selectedCity"
	KeyLanguage        = "language"
)

// Preference is one stored setting (immutable value object).
type Preference struct {
	profile string
	key     string
	value   string
}

// New validates and creates a Preference.
// Profile: ^[a-zA-Z0-9_-]{1,64}$. Key: letter first, then [a-zA-Z0-9_.-], max 64.
// Value: max 1 KiB, may be empty.
func New(profile, key, value string) (Preference, error) {
	if err := ValidateProfile(profile); err != nil {
		return Preference{}, err
	}
	if err := ValidateKey(key); err != nil {
		return Preference{}, err
	}
	if len(value) > MaxValueSize {
		return Preference{}, domain.NewPreferenceError(key, "value too large (max 1024 bytes)")
	}
	return Preference{profile: profile, key: key, value: value}, nil
}

// Reconstruct creates a Preference without validation (storage hydration).
func Reconstruct(profile, key, value string) Preference {
	return Preference{profile: profile, key: key, value: value}
}

// ValidateProfile checks a profile name.
func ValidateProfile(profile string) error {
	if !profileRegex.MatchString(profile) {
		return domain.NewPreferenceError(profile, "profile must be 1-64 alphanumeric, underscore or hyphen characters")
	}
	return nil
}

// ValidateKey checks a preference key.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) {
		return domain.NewPreferenceError(key, "key must start with a letter and use only letters, digits, '_', '.', '-' (max 64)")
	}
	return nil
}

// Profile returns the owning profile.
func (p Preference) Profile() string { return p.profile }

// Key returns the setting name.
func (p Preference) Key() string { return p.key }

// Value returns the stored value.
func (p Preference) Value() string { return p.value }

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a query that cannot be built at all (not a degraded dimension).
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownSortKey signals a sort key missing from the registry.
	ErrUnknownSortKey = errors.New("unknown sort key")
	// ErrInvalidPreference signals a rejected preference key or value.
	ErrInvalidPreference = errors.New("invalid preference")
	// ErrCatalogUnavailable signals that the catalog provider could not load its data.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// PreferenceError wraps ErrInvalidPreference with the offending key.
type PreferenceError struct {
	Key    string
	Reason string
}

func (e *PreferenceError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidPreference.Error(), e.Key, e.Reason)
}

func (e *PreferenceError) Unwrap() error { return ErrInvalidPreference }

// NewPreferenceError creates a preference validation error.
func NewPreferenceError(key, reason string) error {
	return &PreferenceError{Key: key, Reason: reason}
}

// Package prefs stores preferences as one hash per profile.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/kailas-cloud/safeexplore/internal/db"
	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
)

// DefaultKeyPrefix namespaces every key written by the repository.
const DefaultKeyPrefix = "safeexplore:"

// store is the consumer interface for preferences (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/prefs.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a preference repository. An empty prefix uses DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Get returns one preference or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, profile, key string) (preference.Preference, error) {
	v, err := r.store.HGet(ctx, r.profileKey(profile), key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return preference.Preference{}, domain.ErrNotFound
	}
	if err != nil {
		return preference.Preference{}, fmt.Errorf("hget preference %s/%s: %w", profile, key, err)
	}
	return preference.Reconstruct(profile, key, v), nil
}

// List returns every preference of a profile sorted by key.
func (r *Repo) List(ctx context.Context, profile string) ([]preference.Preference, error) {
	m, err := r.store.HGetAll(ctx, r.profileKey(profile))
	if err != nil {
		return nil, fmt.Errorf("hgetall preferences %s: %w", profile, err)
	}
	keys := slices.Sorted(maps.Keys(m))
	out := make([]preference.Preference, 0, len(keys))
	for _, k := range keys {
		out = append(out, preference.Reconstruct(profile, k, m[k]))
	}
	return out, nil
}

// Set upserts a preference.
func (r *Repo) Set(ctx context.Context, p preference.Preference) error {
	if err := r.store.HSet(ctx, r.profileKey(p.Profile()), map[string]string{p.Key(): p.Value()}); err != nil {
		return fmt.Errorf("hset preference %s/%s: %w", p.Profile(), p.Key(), err)
	}
	return nil
}

// Delete removes a preference. Missing keys are not an error.
func (r *Repo) Delete(ctx context.Context, profile, key string) error {
	if err := r.store.HDel(ctx, r.profileKey(profile), key); err != nil {
		return fmt.Errorf("hdel preference %s/%s: %w", profile, key, err)
	}
	return nil
}

// Clear removes every preference of a profile.
func (r *Repo) Clear(ctx context.Context, profile string) error {
	if err := r.store.Del(ctx, r.profileKey(profile)); err != nil {
		return fmt.Errorf("del preferences %s: %w", profile, err)
	}
	return nil
}

// Profiles lists the profiles that have at least one stored preference.
func (r *Repo) Profiles(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.profileKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}
	head := r.profileKey("")
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, head))
	}
	slices.Sort(out)
	return out, nil
}

// Key pattern: {prefix}prefs:{profile}

func (r *Repo) profileKey(profile string) string {
	return r.prefix + "prefs:" + profile
}

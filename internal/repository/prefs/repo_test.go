package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/safeexplore/internal/db"
	"github.com/kailas-cloud/safeexplore/internal/db/memory"
	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
)

func TestRepo_SetWritesProfileHash(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	r := New(&mockStore{hsetFn: func(_ context.Context, key string, fields map[string]string) error {
		gotKey, gotFields = key, fields
		return nil
	}}, "")

	p, err := preference.New("default", preference.KeyLanguage, "de")
	require.NoError(t, err)
	require.NoError(t, r.Set(context.Background(), p))

	assert.Equal(t, "safeexplore:prefs:default", gotKey)
	assert.Equal(t, map[string]string{"language": "de"}, gotFields)
}

func TestRepo_GetMissing(t *testing.T) {
	r := New(&mockStore{hgetFn: func(context.Context, string, string) (string, error) {
		return "", db.ErrKeyNotFound
	}}, "t:")

	_, err := r.Get(context.Background(), "default", "language")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetStoreError(t *testing.T) {
	boom := errors.New("boom")
	r := New(&mockStore{hgetFn: func(context.Context, string, string) (string, error) {
		return "", boom
	}}, "t:")

	_, err := r.Get(context.Background(), "default", "language")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_ProfilesStripsPrefix(t *testing.T) {
	var gotPattern string
	r := New(&mockStore{scanFn: func(_ context.Context, pattern string) ([]string, error) {
		gotPattern = pattern
		return []string{"t:prefs:zoe", "t:prefs:default"}, nil
	}}, "t:")

	got, err := r.Profiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t:prefs:*", gotPattern)
	assert.Equal(t, []string{"default", "zoe"}, got)
}

func TestRepo_MemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(), "")

	for _, kv := range [][2]string{{"userType", "student"}, {"language", "de"}, {"selectedCountry", "DE"}} {
		p, err := preference.New("default", kv[0], kv[1])
		require.NoError(t, err)
		require.NoError(t, r.Set(ctx, p))
	}

	list, err := r.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "language", list[0].Key())
	assert.Equal(t, "userType", list[2].Key())

	got, err := r.Get(ctx, "default", "selectedCountry")
	require.NoError(t, err)
	assert.Equal(t, "DE", got.Value())

	require.NoError(t, r.Delete(ctx, "default", "language"))
	require.NoError(t, r.Delete(ctx, "default", "language"))
	_, err = r.Get(ctx, "default", "language")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.Clear(ctx, "default"))
	list, err = r.List(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, list)
}

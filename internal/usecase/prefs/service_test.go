package prefs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
)

// --- Mocks ---

type mockRepo struct {
	stored   map[string]string
	setErr   error
	setCalls int
	cleared  []string
}

func newMockRepo() *mockRepo { return &mockRepo{stored: map[string]string{}} }

func (m *mockRepo) Get(_ context.Context, profile, key string) (preference.Preference, error) {
	v, ok := m.stored[profile+"/"+key]
	if !ok {
		return preference.Preference{}, domain.ErrNotFound
	}
	return preference.Reconstruct(profile, key, v), nil
}

func (m *mockRepo) List(_ context.Context, profile string) ([]preference.Preference, error) {
	var out []preference.Preference
	for k, v := range m.stored {
		if p, key, ok := strings.Cut(k, "/"); ok && p == profile {
			out = append(out, preference.Reconstruct(p, key, v))
		}
	}
	return out, nil
}

func (m *mockRepo) Set(_ context.Context, p preference.Preference) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.stored[p.Profile()+"/"+p.Key()] = p.Value()
	return nil
}

func (m *mockRepo) Delete(_ context.Context, profile, key string) error {
	delete(m.stored, profile+"/"+key)
	return nil
}

func (m *mockRepo) Clear(_ context.Context, profile string) error {
	m.cleared = append(m.cleared, profile)
	return nil
}

func (m *mockRepo) Profiles(_ context.Context) ([]string, error) {
	return []string{"default"}, nil
}

type mockCountries struct {
	err error
}

func (m mockCountries) Get(_ context.Context, code string) (country.Country, error) {
	if m.err != nil {
		return country.Country{}, m.err
	}
	c, ok := country.Find([]country.Country{{Code: "DE", Name: "Germany"}, {Code: "FR", Name: "France"}}, code)
	if !ok {
		return country.Country{}, domain.ErrNotFound
	}
	return c, nil
}

// --- Tests ---

func TestSetGet(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	ctx := context.Background()

	p, err := svc.Set(ctx, "default", preference.KeySelectedCountry, "germany")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Value() != "germany" {
		t.Errorf("value = %q", p.Value())
	}

	got, err := svc.Get(ctx, "default", preference.KeySelectedCountry)
	if err != nil || got.Value() != "germany" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
}

func TestSet_InvalidNeverReachesRepo(t *testing.T) {
	tests := []struct{ name, profile, key, value string }{
		{"bad profile", "a b", preference.KeyLanguage, "de"},
		{"bad key", "default", "9lives", "de"},
		{"value too large", "default", preference.KeyLanguage, strings.Repeat("x", preference.MaxValueSize+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			_, err := New(repo).Set(context.Background(), tt.profile, tt.key, tt.value)
			if !errors.Is(err, domain.ErrInvalidPreference) {
				t.Errorf("expected ErrInvalidPreference, got %v", err)
			}
			if repo.setCalls != 0 {
				t.Error("repository must not be called")
			}
		})
	}
}

func TestSet_RepoError(t *testing.T) {
	boom := errors.New("boom")
	repo := newMockRepo()
	repo.setErr = boom
	if _, err := New(repo).Set(context.Background(), "default", preference.KeyLanguage, "de"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := New(newMockRepo()).Get(context.Background(), "default", preference.KeyUserType)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	svc := New(newMockRepo())
	ctx := context.Background()
	for range 2 {
		if err := svc.Delete(ctx, "default", preference.KeyLanguage); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := svc.Delete(ctx, "default", "bad key"); !errors.Is(err, domain.ErrInvalidPreference) {
		t.Errorf("expected ErrInvalidPreference, got %v", err)
	}
}

func TestListAndClear(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo)
	ctx := context.Background()
	_, _ = svc.Set(ctx, "default", preference.KeyLanguage, "de")
	_, _ = svc.Set(ctx, "other", preference.KeyLanguage, "fr")

	ps, err := svc.List(ctx, "default")
	if err != nil || len(ps) != 1 || ps[0].Value() != "de" {
		t.Fatalf("List = %+v, %v", ps, err)
	}
	if _, err := svc.List(ctx, ""); !errors.Is(err, domain.ErrInvalidPreference) {
		t.Errorf("expected ErrInvalidPreference for empty profile, got %v", err)
	}

	if err := svc.Clear(ctx, "default"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.cleared) != 1 || repo.cleared[0] != "default" {
		t.Errorf("cleared = %v", repo.cleared)
	}
}

func TestSet_SelectedCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("canonical code stored", func(t *testing.T) {
		repo := newMockRepo()
		p, err := New(repo, WithCountries(mockCountries{})).Set(ctx, "default", preference.KeySelectedCountry, "de")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Value() != "DE" || repo.stored["default/"+preference.KeySelectedCountry] != "DE" {
			t.Errorf("value = %q, stored = %v", p.Value(), repo.stored)
		}
	})

	t.Run("unknown code rejected", func(t *testing.T) {
		repo := newMockRepo()
		_, err := New(repo, WithCountries(mockCountries{})).Set(ctx, "default", preference.KeySelectedCountry, "germany")
		if !errors.Is(err, domain.ErrInvalidPreference) {
			t.Errorf("expected ErrInvalidPreference, got %v", err)
		}
		if repo.setCalls != 0 {
			t.Error("repository must not be called")
		}
	})

	t.Run("empty value clears", func(t *testing.T) {
		repo := newMockRepo()
		if _, err := New(repo, WithCountries(mockCountries{})).Set(ctx, "default", preference.KeySelectedCountry, ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("other keys untouched", func(t *testing.T) {
		repo := newMockRepo()
		p, err := New(repo, WithCountries(mockCountries{})).Set(ctx, "default", preference.KeySelectedCity, "Berlin")
		if err != nil || p.Value() != "Berlin" {
			t.Errorf("Set = %+v, %v", p, err)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := New(newMockRepo(), WithCountries(mockCountries{err: boom})).Set(ctx, "default", preference.KeySelectedCountry, "DE")
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}

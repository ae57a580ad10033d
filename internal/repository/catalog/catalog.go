// Package catalog provides the read-only reference data (documents, experiences,
// services, laws, countries, phrase books) from a YAML file or the embedded seed.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
)

//go:embed seed.yaml
var seed []byte

// Catalog is an immutable in-memory snapshot. Accessors return copies of the
// top-level slices; nested slices are shared and must not be modified.
type Catalog struct {
	source             string
	documentCategories []requirement.Category
	documents          []requirement.Requirement
	experiences        []experience.Experience
	serviceCategories  []localservice.ServiceCategory
	services           []localservice.Service
	emergencyContacts  []localservice.EmergencyContact
	lawGroups          []law.Group
	countries          []country.Country
	destinations       []country.Destination
	phraseBooks        []phrase.Book
}

// Load reads the catalog from path, or the embedded seed when path is empty.
// Failures wrap domain.ErrCatalogUnavailable.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return parse("embedded", seed)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogUnavailable, path, err)
	}
	return parse(path, data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	return parse("inline", data)
}

// Seed returns the embedded catalog.
func Seed() *Catalog {
	c, err := parse("embedded", seed)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return c
}

func parse(source string, data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCatalogUnavailable, source, err)
	}
	c, err := fromFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCatalogUnavailable, source, err)
	}
	c.source = source
	return c, nil
}

func fromFile(f file) (*Catalog, error) {
	c := &Catalog{}

	docCats := make(map[string]bool, len(f.DocumentCategories))
	for _, r := range f.DocumentCategories {
		if r.ID == "" || docCats[r.ID] {
			return nil, fmt.Errorf("document category %q: missing or duplicate id", r.ID)
		}
		docCats[r.ID] = true
		c.documentCategories = append(c.documentCategories, r.toDomain())
	}

	seen := map[string]bool{}
	for _, r := range f.Documents {
		d, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate document %q", d.ID)
		}
		if len(docCats) > 0 && !docCats[d.Category] {
			return nil, fmt.Errorf("document %q: unknown category %q", d.ID, d.Category)
		}
		seen[d.ID] = true
		c.documents = append(c.documents, d)
	}

	seen = map[string]bool{}
	for _, r := range f.Experiences {
		e := r.toDomain()
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate experience %q", e.ID)
		}
		seen[e.ID] = true
		c.experiences = append(c.experiences, e)
	}

	svcCats := make(map[string]bool, len(f.ServiceCategories))
	for _, r := range f.ServiceCategories {
		if r.ID == "" || svcCats[r.ID] {
			return nil, fmt.Errorf("service category %q: missing or duplicate id", r.ID)
		}
		svcCats[r.ID] = true
		c.serviceCategories = append(c.serviceCategories, r.toDomain())
	}

	seen = map[string]bool{}
	for _, r := range f.Services {
		s := r.toDomain()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate service %q", s.ID)
		}
		if !svcCats[s.Category] {
			return nil, fmt.Errorf("service %q: unknown category %q", s.ID, s.Category)
		}
		seen[s.ID] = true
		c.services = append(c.services, s)
	}

	for _, r := range f.EmergencyContacts {
		c.emergencyContacts = append(c.emergencyContacts, r.toDomain())
	}

	seen = map[string]bool{}
	for _, r := range f.LawGroups {
		g := r.toDomain()
		for _, l := range g.Laws {
			if err := l.Validate(); err != nil {
				return nil, err
			}
			if seen[l.ID] {
				return nil, fmt.Errorf("duplicate law %q", l.ID)
			}
			seen[l.ID] = true
		}
		c.lawGroups = append(c.lawGroups, g)
	}

	codes := map[string]bool{}
	for _, r := range f.Countries {
		ct := r.toDomain()
		if err := ct.Validate(); err != nil {
			return nil, err
		}
		if codes[ct.Code] {
			return nil, fmt.Errorf("duplicate country %q", ct.Code)
		}
		codes[ct.Code] = true
		c.countries = append(c.countries, ct)
	}

	for _, r := range f.Destinations {
		d := r.toDomain()
		if err := d.Validate(c.countries); err != nil {
			return nil, err
		}
		c.destinations = append(c.destinations, d)
	}

	for _, r := range f.PhraseBooks {
		b := r.toDomain()
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if _, dup := phrase.Find(c.phraseBooks, b.Language); dup {
			return nil, fmt.Errorf("duplicate phrase book %q", b.Language)
		}
		c.phraseBooks = append(c.phraseBooks, b)
	}

	return c, nil
}

// Source names where the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }

// HealthCheck reports whether the catalog is usable.
func (c *Catalog) HealthCheck(_ context.Context) error {
	if c == nil {
		return domain.ErrCatalogUnavailable
	}
	return nil
}

// Documents returns the document requirements.
func (c *Catalog) Documents(_ context.Context) ([]requirement.Requirement, error) {
	return slices.Clone(c.documents), nil
}

// DocumentCategories returns the document categories.
func (c *Catalog) DocumentCategories(_ context.Context) ([]requirement.Category, error) {
	return slices.Clone(c.documentCategories), nil
}

// Experiences returns the tourist experiences.
func (c *Catalog) Experiences(_ context.Context) ([]experience.Experience, error) {
	return slices.Clone(c.experiences), nil
}

// Services returns the local services.
func (c *Catalog) Services(_ context.Context) ([]localservice.Service, error) {
	return slices.Clone(c.services), nil
}

// ServiceCategories returns the local service categories.
func (c *Catalog) ServiceCategories(_ context.Context) ([]localservice.ServiceCategory, error) {
	return slices.Clone(c.serviceCategories), nil
}

// EmergencyContacts returns the emergency numbers.
func (c *Catalog) EmergencyContacts(_ context.Context) ([]localservice.EmergencyContact, error) {
	return slices.Clone(c.emergencyContacts), nil
}

// LawGroups returns the law guide in catalog order.
func (c *Catalog) LawGroups(_ context.Context) ([]law.Group, error) {
	return slices.Clone(c.lawGroups), nil
}

// Countries returns the selectable countries in catalog order.
func (c *Catalog) Countries(_ context.Context) ([]country.Country, error) {
	return slices.Clone(c.countries), nil
}

// FeaturedDestinations returns the featured cities for every audience.
func (c *Catalog) FeaturedDestinations(_ context.Context) ([]country.Destination, error) {
	return slices.Clone(c.destinations), nil
}

// PhraseBooks returns the emergency phrase books.
func (c *Catalog) PhraseBooks(_ context.Context) ([]phrase.Book, error) {
	return slices.Clone(c.phraseBooks), nil
}

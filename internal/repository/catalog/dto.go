package catalog

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
)

const dateLayout = "2006-01-02"

// file is the YAML layout of a catalog file.
type file struct {
	DocumentCategories []categoryRow        `yaml:"document_categories"`
	Documents          []documentRow        `yaml:"documents"`
	Experiences        []experienceRow      `yaml:"experiences"`
	ServiceCategories  []serviceCategoryRow `yaml:"service_categories"`
	Services           []serviceRow         `yaml:"services"`
	EmergencyContacts  []contactRow         `yaml:"emergency_contacts"`
	LawGroups          []lawGroupRow        `yaml:"law_groups"`
	Countries          []countryRow         `yaml:"countries"`
	Destinations       []destinationRow     `yaml:"featured_destinations"`
	PhraseBooks        []phraseBookRow      `yaml:"phrase_books"`
}

type categoryRow struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	Description    string `yaml:"description"`
	TotalCount     int    `yaml:"total_count"`
	CompletedCount int    `yaml:"completed_count"`
}

type uploadRow struct {
	Name       string `yaml:"name"`
	UploadedAt string `yaml:"uploaded_at"`
}

type documentRow struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Category     string      `yaml:"category"`
	Status       string      `yaml:"status"`
	Priority     string      `yaml:"priority"`
	DueDate      string      `yaml:"due_date"`
	Requirements []string    `yaml:"requirements"`
	Uploads      []uploadRow `yaml:"uploads"`
	Notes        string      `yaml:"notes"`
	Suggestions  []string    `yaml:"suggestions"`
}

type pointRow struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type experienceRow struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Category         string   `yaml:"category"`
	Rating           float64  `yaml:"rating"`
	ReviewCount      int      `yaml:"review_count"`
	Duration         string   `yaml:"duration"`
	DistanceKm       float64  `yaml:"distance_km"`
	PriceRange       string   `yaml:"price_range"`
	Tags             []string `yaml:"tags"`
	Bookable         bool     `yaml:"bookable"`
	Accessible       bool     `yaml:"accessible"`
	WeatherDependent bool     `yaml:"weather_dependent"`
	SpecialOffer     string   `yaml:"special_offer"`
	Location         pointRow `yaml:"location"`
}

type serviceCategoryRow struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Count      int    `yaml:"count"`
	HasUpdates bool   `yaml:"has_updates"`
}

type serviceRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Address     string   `yaml:"address"`
	DistanceKm  float64  `yaml:"distance_km"`
	Phone       string   `yaml:"phone"`
	Rating      float64  `yaml:"rating"`
	ReviewCount int      `yaml:"review_count"`
	Open        bool     `yaml:"open"`
	Languages   []string `yaml:"languages"`
	Booking     bool     `yaml:"booking"`
	Location    pointRow `yaml:"location"`
}

type contactRow struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Number      string `yaml:"number"`
}

type lawRow struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Category    string   `yaml:"category"`
	Penalties   string   `yaml:"penalties"`
	Examples    []string `yaml:"examples"`
}

type lawGroupRow struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Icon  string   `yaml:"icon"`
	Laws  []lawRow `yaml:"laws"`
}

type countryRow struct {
	Code      string   `yaml:"code"`
	Name      string   `yaml:"name"`
	Flag      string   `yaml:"flag"`
	Continent string   `yaml:"continent"`
	Cities    []string `yaml:"cities"`
}

type destinationRow struct {
	Country     string   `yaml:"country"`
	City        string   `yaml:"city"`
	Description string   `yaml:"description"`
	Highlights  []string `yaml:"highlights"`
	Audience    string   `yaml:"audience"`
}

type phraseRow struct {
	English       string `yaml:"english"`
	Translation   string `yaml:"translation"`
	Pronunciation string `yaml:"pronunciation"`
}

type phraseBookRow struct {
	Language string      `yaml:"language"`
	Locale   string      `yaml:"locale"`
	Phrases  []phraseRow `yaml:"phrases"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil //nolint:nilnil // absent date
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return &t, nil
}

func (r categoryRow) toDomain() requirement.Category {
	return requirement.Category{
		ID:             r.ID,
		Name:           r.Name,
		Type:           r.Type,
		Description:    r.Description,
		TotalCount:     r.TotalCount,
		CompletedCount: r.CompletedCount,
	}
}

func (r documentRow) toDomain() (requirement.Requirement, error) {
	due, err := parseDate(r.DueDate)
	if err != nil {
		return requirement.Requirement{}, fmt.Errorf("document %s: %w", r.ID, err)
	}
	uploads := make([]requirement.Upload, 0, len(r.Uploads))
	for _, u := range r.Uploads {
		at, err := parseDate(u.UploadedAt)
		if err != nil {
			return requirement.Requirement{}, fmt.Errorf("document %s upload %s: %w", r.ID, u.Name, err)
		}
		up := requirement.Upload{Name: u.Name}
		if at != nil {
			up.UploadedAt = *at
		}
		uploads = append(uploads, up)
	}
	return requirement.Requirement{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Status:       requirement.Status(r.Status),
		Priority:     requirement.Priority(r.Priority),
		DueDate:      due,
		Requirements: r.Requirements,
		Uploads:      uploads,
		Notes:        r.Notes,
		Suggestions:  r.Suggestions,
	}, nil
}

func (r experienceRow) toDomain() experience.Experience {
	return experience.Experience{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Category:         r.Category,
		Rating:           r.Rating,
		ReviewCount:      r.ReviewCount,
		Duration:         r.Duration,
		DistanceKm:       r.DistanceKm,
		PriceRange:       experience.PriceRange(r.PriceRange),
		Tags:             r.Tags,
		Bookable:         r.Bookable,
		Accessible:       r.Accessible,
		WeatherDependent: r.WeatherDependent,
		SpecialOffer:     r.SpecialOffer,
		Location:         geo.Point{Lat: r.Location.Lat, Lng: r.Location.Lng},
	}
}

func (r serviceCategoryRow) toDomain() localservice.ServiceCategory {
	return localservice.ServiceCategory{ID: r.ID, Name: r.Name, Count: r.Count, HasUpdates: r.HasUpdates}
}

func (r serviceRow) toDomain() localservice.Service {
	return localservice.Service{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Address:     r.Address,
		DistanceKm:  r.DistanceKm,
		Phone:       r.Phone,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Open:        r.Open,
		Languages:   r.Languages,
		Booking:     r.Booking,
		Location:    geo.Point{Lat: r.Location.Lat, Lng: r.Location.Lng},
	}
}

func (r contactRow) toDomain() localservice.EmergencyContact {
	return localservice.EmergencyContact{ID: r.ID, Name: r.Name, Description: r.Description, Number: r.Number}
}

// toDomain converts a group; laws without a category inherit the group id.
func (r lawGroupRow) toDomain() law.Group {
	laws := make([]law.Law, 0, len(r.Laws))
	for _, l := range r.Laws {
		category := l.Category
		if category == "" {
			category = r.ID
		}
		laws = append(laws, law.Law{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Severity:    law.Severity(l.Severity),
			Category:    category,
			Penalties:   l.Penalties,
			Examples:    l.Examples,
		})
	}
	return law.Group{ID: r.ID, Title: r.Title, Icon: r.Icon, Laws: laws}
}

func (r countryRow) toDomain() country.Country {
	return country.Country{Code: r.Code, Name: r.Name, Flag: r.Flag, Continent: r.Continent, Cities: r.Cities}
}

func (r destinationRow) toDomain() country.Destination {
	return country.Destination{
		Country:     r.Country,
		City:        r.City,
		Description: r.Description,
		Highlights:  r.Highlights,
		Audience:    country.Audience(r.Audience),
	}
}

func (r phraseBookRow) toDomain() phrase.Book {
	phrases := make([]phrase.Phrase, len(r.Phrases))
	for i, p := range r.Phrases {
		phrases[i] = phrase.Phrase{English: p.English, Translation: p.Translation, Pronunciation: p.Pronunciation}
	}
	return phrase.Book{Language: r.Language, Locale: r.Locale, Phrases: phrases}
}

package chi

import (
	"time"

	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
	"github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

const dateLayout = "2006-01-02"

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest         ErrorCode = "bad_request"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeValidationFailed   ErrorCode = "validation_failed"
	ErrorCodeRateLimited        ErrorCode = "rate_limited"
	ErrorCodeCatalogUnavailable ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ListResponse wraps a filtered and sorted listing.
type ListResponse[T any] struct {
	Items       []T    `json:"items"`
	Count       int    `json:"count"`
	Total       int    `json:"total"`
	Sort        string `json:"sort,omitempty"`
	SortApplied bool   `json:"sort_applied"`
}

func listToResponse[S, T any](res listing.Result[S], conv func(S) T) ListResponse[T] {
	items := make([]T, len(res.Items))
	for i, it := range res.Items {
		items[i] = conv(it)
	}
	return ListResponse[T]{
		Items:       items,
		Count:       len(items),
		Total:       res.Total,
		Sort:        string(res.SortKey),
		SortApplied: res.SortApplied,
	}
}

// Items wraps a plain collection.
type Items[T any] struct {
	Items []T `json:"items"`
}

func itemsOf[S, T any](in []S, conv func(S) T) Items[T] {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = conv(v)
	}
	return Items[T]{Items: out}
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func locationToDTO(p geo.Point) Location { return Location{Lat: p.Lat, Lng: p.Lng} }

// --- Documents ---

type Upload struct {
	Name       string `json:"name"`
	UploadedAt string `json:"uploaded_at"`
}

type Document struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority"`
	DueDate      *string  `json:"due_date,omitempty"`
	Requirements []string `json:"requirements"`
	Uploads      []Upload `json:"uploads"`
	Notes        string   `json:"notes,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func documentToDTO(r requirement.Requirement) Document {
	d := Document{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Status:       string(r.Status),
		Priority:     string(r.Priority),
		Requirements: nonNil(r.Requirements),
		Uploads:      make([]Upload, len(r.Uploads)),
		Notes:        r.Notes,
		Suggestions:  r.Suggestions,
	}
	if r.DueDate != nil {
		s := r.DueDate.Format(dateLayout)
		d.DueDate = &s
	}
	for i, u := range r.Uploads {
		d.Uploads[i] = Upload{Name: u.Name, UploadedAt: u.UploadedAt.Format(dateLayout)}
	}
	return d
}

type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

type CategoryProgress struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
}

func categoryProgressToDTO(c requirement.CategoryProgress) CategoryProgress {
	return CategoryProgress{
		ID:         c.ID,
		Name:       c.Name,
		Type:       c.Type,
		Total:      c.Total,
		Completed:  c.Completed,
		Percentage: c.Percentage,
	}
}

type Deadline struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name"`
	DueDate      string `json:"due_date"`
	DaysLeft     int    `json:"days_left"`
	Label        string `json:"label"`
	Urgency      string `json:"urgency"`
}

func deadlineToDTO(d requirement.Deadline) Deadline {
	return Deadline{
		ID:           d.ID,
		Name:         d.Name,
		CategoryName: d.CategoryName,
		DueDate:      d.DueDate.Format(dateLayout),
		DaysLeft:     d.DaysLeft,
		Label:        d.Label,
		Urgency:      string(d.Urgency),
	}
}

// --- Experiences ---

type Experience struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"review_count"`
	Duration         string   `json:"duration"`
	DistanceKm       float64  `json:"distance_km"`
	PriceRange       string   `json:"price_range"`
	Tags             []string `json:"tags"`
	Bookable         bool     `json:"bookable"`
	Accessible       bool     `json:"accessible"`
	WeatherDependent bool     `json:"weather_dependent"`
	SpecialOffer     string   `json:"special_offer,omitempty"`
	Location         Location `json:"location"`
}

func experienceToDTO(e experience.Experience) Experience {
	return Experience{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		Rating:           e.Rating,
		ReviewCount:      e.ReviewCount,
		Duration:         e.Duration,
		DistanceKm:       e.DistanceKm,
		PriceRange:       string(e.PriceRange),
		Tags:             nonNil(e.Tags),
		Bookable:         e.Bookable,
		Accessible:       e.Accessible,
		WeatherDependent: e.WeatherDependent,
		SpecialOffer:     e.SpecialOffer,
		Location:         locationToDTO(e.Location),
	}
}

// --- Local services ---

type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Address     string   `json:"address"`
	DistanceKm  float64  `json:"distance_km"`
	Phone       string   `json:"phone"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Open        bool     `json:"open"`
	Languages   []string `json:"languages"`
	Booking     bool     `json:"booking"`
	Location    Location `json:"location"`
}

func serviceToDTO(s localservice.Service) Service {
	return Service{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Address:     s.Address,
		DistanceKm:  s.DistanceKm,
		Phone:       s.Phone,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		Open:        s.Open,
		Languages:   nonNil(s.Languages),
		Booking:     s.Booking,
		Location:    locationToDTO(s.Location),
	}
}

type ServiceCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	HasUpdates bool   `json:"has_updates"`
}

func serviceCategoryToDTO(c localservice.ServiceCategory) ServiceCategory {
	return ServiceCategory{ID: c.ID, Name: c.Name, Count: c.Count, HasUpdates: c.HasUpdates}
}

type EmergencyContact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Number      string `json:"number"`
}

func emergencyContactToDTO(c localservice.EmergencyContact) EmergencyContact {
	return EmergencyContact{ID: c.ID, Name: c.Name, Description: c.Description, Number: c.Number}
}

type PhraseBook struct {
	Language string   `json:"language"`
	Locale   string   `json:"locale"`
	Phrases  []Phrase `json:"phrases"`
}

type Phrase struct {
	English       string `json:"english"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

func phraseBookToDTO(b phrase.Book) PhraseBook {
	phrases := make([]Phrase, len(b.Phrases))
	for i, p := range b.Phrases {
		phrases[i] = Phrase{English: p.English, Translation: p.Translation, Pronunciation: p.Pronunciation}
	}
	return PhraseBook{Language: b.Language, Locale: b.Locale, Phrases: phrases}
}

// --- Countries ---

type Country struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Flag      string   `json:"flag"`
	Continent string   `json:"continent"`
	Cities    []string `json:"cities"`
}

func countryToDTO(c country.Country) Country {
	return Country{Code: c.Code, Name: c.Name, Flag: c.Flag, Continent: c.Continent, Cities: nonNil(c.Cities)}
}

type Destination struct {
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Audience    string   `json:"audience"`
}

func destinationToDTO(d country.Destination) Destination {
	return Destination{
		Country:     d.Country,
		City:        d.City,
		Description: d.Description,
		Highlights:  nonNil(d.Highlights),
		Audience:    string(d.Audience),
	}
}

// --- Laws ---

type Law struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Category    string   `json:"category"`
	Penalties   string   `json:"penalties"`
	Examples    []string `json:"examples"`
}

func lawToDTO(l law.Law) Law {
	return Law{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Severity:    string(l.Severity),
		Category:    l.Category,
		Penalties:   l.Penalties,
		Examples:    nonNil(l.Examples),
	}
}

type LawGroup struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Icon          string `json:"icon,omitempty"`
	CriticalCount int    `json:"critical_count"`
	Laws          []Law  `json:"laws"`
}

type LawGuide struct {
	Groups       []LawGroup `json:"groups"`
	TotalLaws    int        `json:"total_laws"`
	CriticalLaws int        `json:"critical_laws"`
}

func guideToDTO(g laws.Guide) LawGuide {
	out := LawGuide{
		Groups:       make([]LawGroup, len(g.Groups)),
		TotalLaws:    g.TotalLaws,
		CriticalLaws: g.CriticalLaws,
	}
	for i, gr := range g.Groups {
		ls := make([]Law, len(gr.Laws))
		for j, l := range gr.Laws {
			ls[j] = lawToDTO(l)
		}
		out.Groups[i] = LawGroup{ID: gr.ID, Title: gr.Title, Icon: gr.Icon, CriticalCount: gr.CriticalCount, Laws: ls}
	}
	return out
}

// --- Preferences ---

type Preference struct {
	Profile string `json:"profile"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func preferenceToDTO(p preference.Preference) Preference {
	return Preference{Profile: p.Profile(), Key: p.Key(), Value: p.Value()}
}

// SetPreferenceRequest is the PUT body for a preference.
type SetPreferenceRequest struct {
	Value *string `json:"value"`
}

// --- Assistant ---

// MessageRequest is the POST body for an assistant message.
type MessageRequest struct {
	Text          string `json:"text"`
	EmergencyMode bool   `json:"emergency_mode"`
}

// ActionRequest is the POST body for an assistant quick action.
type ActionRequest struct {
	Action        string `json:"action"`
	EmergencyMode bool   `json:"emergency_mode"`
}

type QuickAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Action string `json:"action"`
}

type Reply struct {
	ID           string        `json:"id"`
	Topic        string        `json:"topic"`
	Kind         string        `json:"kind"`
	Content      string        `json:"content"`
	QuickActions []QuickAction `json:"quick_actions"`
	Suggestions  []string      `json:"suggestions"`
	CreatedAt    time.Time     `json:"created_at"`
}

func replyToDTO(r domassist.Reply) Reply {
	actions := make([]QuickAction, len(r.QuickActions))
	for i, a := range r.QuickActions {
		actions[i] = QuickAction{ID: a.ID, Label: a.Label, Action: a.Action}
	}
	return Reply{
		ID:           r.ID.String(),
		Topic:        string(r.Topic),
		Kind:         string(r.Kind),
		Content:      r.Content,
		QuickActions: actions,
		Suggestions:  nonNil(r.Suggestions),
		CreatedAt:    r.CreatedAt,
	}
}

// --- Health ---

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

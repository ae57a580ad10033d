package safeexplore

import (
	"github.com/kailas-cloud/safeexplore/internal/domain"
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	"github.com/kailas-cloud/safeexplore/internal/domain/country"
	"github.com/kailas-cloud/safeexplore/internal/domain/experience"
	"github.com/kailas-cloud/safeexplore/internal/domain/geo"
	"github.com/kailas-cloud/safeexplore/internal/domain/law"
	"github.com/kailas-cloud/safeexplore/internal/domain/localservice"
	"github.com/kailas-cloud/safeexplore/internal/domain/phrase"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
	"github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

// Catalog item types.
type (
	Document         = requirement.Requirement
	DocumentCategory = requirement.CategoryProgress
	Progress         = requirement.Progress
	Deadline         = requirement.Deadline
	Experience       = experience.Experience
	Service          = localservice.Service
	ServiceCategory  = localservice.ServiceCategory
	EmergencyContact = localservice.EmergencyContact
	PhraseBook       = phrase.Book
	Phrase           = phrase.Phrase
	Country          = country.Country
	Destination      = country.Destination
	Law              = law.Law
	LawGroup         = law.GroupResult
	LawGuide         = laws.Guide
	Point            = geo.Point
	Reply            = domassist.Reply
	QuickAction      = domassist.QuickAction
)

// Errors returned by the SDK; match them with errors.Is.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrInvalidPreference  = domain.ErrInvalidPreference
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)

// Result is one filtered and sorted listing.
type Result[T any] struct {
	Items []T
	// Total is the collection size before filtering.
	Total int
	// SortKey is the applied sort key; empty when SortApplied is false.
	SortKey string
	// SortApplied is false when the requested sort key was unknown and the
	// items kept catalog order.
	SortApplied bool
}

func fromListing[T any](r listing.Result[T]) Result[T] {
	return Result[T]{
		Items:       r.Items,
		Total:       r.Total,
		SortKey:     string(r.SortKey),
		SortApplied: r.SortApplied,
	}
}

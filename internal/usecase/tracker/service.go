// Package tracker serves the document requirements tracker.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/requirement"
	"github.com/kailas-cloud/safeexplore/internal/usecase/listing"
)

// Service lists, summarizes and schedules document requirements.
type Service struct {
	catalog       Catalog
	now           func() time.Time
	loc           *time.Location
	deadlineLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the reference time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone whose calendar day decides overdue.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDeadlineLimit sets the default number of upcoming deadlines.
func WithDeadlineLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.deadlineLimit = n
		}
	}
}

// New creates a tracker service.
func New(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:       catalog,
		now:           time.Now,
		loc:           time.UTC,
		deadlineLimit: requirement.DefaultDeadlineLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// List filters and sorts requirements. A zero q.Now uses the service clock.
func (s *Service) List(ctx context.Context, q requirement.Query) (listing.Result[requirement.Requirement], error) {
	reqs, err := s.catalog.Documents(ctx)
	if err != nil {
		return listing.Result[requirement.Requirement]{}, fmt.Errorf("load documents: %w", err)
	}

	q.Now = s.asOf(q.Now)
	spec, applied := q.SortSpec()
	return listing.Run(ctx, reqs, requirement.Requirement.Record, listing.Request{
		Catalog:       "documents",
		RequestedSort: q.Sort,
		Criteria:      q.Criteria(),
		Spec:          spec,
		SortApplied:   applied,
	}), nil
}

// Get returns one requirement or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (requirement.Requirement, error) {
	reqs, err := s.catalog.Documents(ctx)
	if err != nil {
		return requirement.Requirement{}, fmt.Errorf("load documents: %w", err)
	}
	for _, r := range reqs {
		if r.ID == id {
			return r, nil
		}
	}
	return requirement.Requirement{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
}

// Progress summarizes completion over all requirements.
func (s *Service) Progress(ctx context.Context) (requirement.Progress, error) {
	reqs, err := s.catalog.Documents(ctx)
	if err != nil {
		return requirement.Progress{}, fmt.Errorf("load documents: %w", err)
	}
	return requirement.ProgressOf(reqs), nil
}

// Deadlines returns the earliest open deadlines. limit <= 0 uses the configured default.
func (s *Service) Deadlines(ctx context.Context, limit int, now time.Time) ([]requirement.Deadline, error) {
	reqs, err := s.catalog.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	cats, err := s.catalog.DocumentCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document categories: %w", err)
	}
	if limit <= 0 {
		limit = s.deadlineLimit
	}
	return requirement.UpcomingDeadlines(reqs, cats, s.asOf(now), limit), nil
}

// Categories returns per-category completion.
func (s *Service) Categories(ctx context.Context) ([]requirement.CategoryProgress, error) {
	cats, err := s.catalog.DocumentCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document categories: %w", err)
	}
	return requirement.CategoryProgressOf(cats), nil
}

func (s *Service) asOf(t time.Time) time.Time {
	if t.IsZero() {
		t = s.now()
	}
	return t.In(s.loc)
}

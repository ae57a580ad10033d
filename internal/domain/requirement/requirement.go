// Package requirement models the document requirements a traveller or immigrant must gather.
package requirement

import (
	"fmt"
	"math"
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// Status is the preparation state of a requirement.
type Status string

const (
	// StatusNotStarted means no work has been done.
	StatusNotStarted Status = "not-started"
	// StatusInProgress means the document is being prepared.
	StatusInProgress Status = "in-progress"
	// StatusCompleted means the document is ready.
	StatusCompleted Status = "completed"
	// StatusVerified means the document was checked by an authority.
	StatusVerified Status = "verified"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool { return rank.Status.Contains(string(s)) }

// IsTerminal reports whether the status ends the requirement's lifecycle.
func (s Status) IsTerminal() bool { return s == StatusCompleted || s == StatusVerified }

// TerminalStatuses lists the statuses that can never be overdue.
func TerminalStatuses() []string {
	return []string{string(StatusCompleted), string(StatusVerified)}
}

// Priority is how urgent a requirement is.
type Priority string

// Priority values, most urgent first.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid checks if the priority is one of the supported values.
func (p Priority) IsValid() bool { return rank.Priority.Contains(string(p)) }

// Record field names.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldDueDate  = "dueDate"
)

// Upload is a file attached to a requirement.
type Upload struct {
	Name       string
	UploadedAt time.Time
}

// Requirement is one document the user must provide.
type Requirement struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Status       Status
	Priority     Priority
	DueDate      *time.Time
	Requirements []string
	Uploads      []Upload
	Notes        string
	Suggestions  []string
}

// Validate checks the fields the tracker relies on.
func (r Requirement) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("requirement ID is required")
	}
	if r.Name == "" {
		return fmt.Errorf("requirement %q: name is required", r.ID)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("requirement %q: unknown status %q", r.ID, r.Status)
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("requirement %q: unknown priority %q", r.ID, r.Priority)
	}
	return nil
}

// Record projects the requirement for the query pipeline.
// Searchable fields are name then description.
func (r Requirement) Record() record.Record {
	opts := []record.Option{
		record.Searchable(r.Name, r.Description),
		record.Category(FieldName, r.Name),
		record.Category(FieldCategory, r.Category),
		record.Category(FieldStatus, string(r.Status)),
		record.Category(FieldPriority, string(r.Priority)),
	}
	if r.DueDate != nil {
		opts = append(opts, record.Date(FieldDueDate, *r.DueDate))
	}
	// ID is validated at load time.
	rec, _ := record.New(r.ID, opts...)
	return rec
}

// Category groups requirements of one kind (identity, visa, financial...).
type Category struct {
	ID             string
	Name           string
	Type           string
	Description    string
	TotalCount     int
	CompletedCount int
}

// Percentage returns the rounded completion percentage.
func (c Category) Percentage() int { return percent(c.CompletedCount, c.TotalCount) }

// Progress summarizes completion across requirements.
type Progress struct {
	Total      int
	Completed  int
	Percentage int
}

// ProgressOf counts completed and verified requirements.
func ProgressOf(reqs []Requirement) Progress {
	done := 0
	for _, r := range reqs {
		if r.Status.IsTerminal() {
			done++
		}
	}
	return Progress{Total: len(reqs), Completed: done, Percentage: percent(done, len(reqs))}
}

// CategoryProgress is the completion summary of one category.
type CategoryProgress struct {
	ID         string
	Name       string
	Type       string
	Total      int
	Completed  int
	Percentage int
}

// CategoryProgressOf returns one summary per category, in input order.
func CategoryProgressOf(cats []Category) []CategoryProgress {
	out := make([]CategoryProgress, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryProgress{
			ID:         c.ID,
			Name:       c.Name,
			Type:       c.Type,
			Total:      c.TotalCount,
			Completed:  c.CompletedCount,
			Percentage: c.Percentage(),
		})
	}
	return out
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

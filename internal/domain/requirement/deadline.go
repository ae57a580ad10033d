package requirement

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/pipeline"
)

// DefaultDeadlineLimit is the number of upcoming deadlines shown by default.
const DefaultDeadlineLimit = 5

// Urgency buckets a deadline for display.
type Urgency string

// Urgency values.
const (
	UrgencyOverdue Urgency = "overdue"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)

// soonDays is the horizon, in days, at which a deadline turns urgent.
const soonDays = 3

// Deadline is an open requirement with a due date.
type Deadline struct {
	ID           string
	Name         string
	CategoryName string
	DueDate      time.Time
	DaysLeft     int
	Label        string
	Urgency      Urgency
}

// UpcomingDeadlines returns open requirements with a due date, earliest first.
// Category ids are resolved to names through cats. limit <= 0 uses DefaultDeadlineLimit.
func UpcomingDeadlines(reqs []Requirement, cats []Category, now time.Time, limit int) []Deadline {
	if limit <= 0 {
		limit = DefaultDeadlineLimit
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	open := filter.New(filter.AnyOf(FieldStatus, string(StatusNotStarted), string(StatusInProgress)))
	spec, _ := Sorts.Spec(SortDueDate, "")
	ordered := pipeline.Select(reqs, Requirement.Record, open, spec)

	out := make([]Deadline, 0, limit)
	for _, r := range ordered {
		if len(out) == limit {
			break
		}
		// Missing due dates sort last.
		if r.DueDate == nil {
			break
		}
		name := names[r.Category]
		if name == "" {
			name = r.Category
		}
		days := filter.DaysUntil(*r.DueDate, now)
		out = append(out, Deadline{
			ID:           r.ID,
			Name:         r.Name,
			CategoryName: name,
			DueDate:      *r.DueDate,
			DaysLeft:     days,
			Label:        labelFor(days),
			Urgency:      urgencyFor(days),
		})
	}
	return out
}

// DeadlineLabel returns a human label for a due date relative to now.
func DeadlineLabel(due, now time.Time) string {
	return labelFor(filter.DaysUntil(due, now))
}

// DeadlineUrgency classifies a due date relative to now.
func DeadlineUrgency(due, now time.Time) Urgency {
	return urgencyFor(filter.DaysUntil(due, now))
}

func labelFor(days int) string {
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

func urgencyFor(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= soonDays:
		return UrgencySoon
	default:
		return UrgencyNormal
	}
}

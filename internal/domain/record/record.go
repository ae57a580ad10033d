// Package record defines the generic item the query pipeline filters and sorts.
package record

import (
	"errors"
	"time"
)

// Record is an immutable, filterable view of a catalog item.
// A field that was never set is absent: accessors report ok=false for it.
type Record struct {
	id         string
	searchable []string
	categories map[string]string
	values     map[string][]string
	numbers    map[string]float64
	dates      map[string]time.Time
	flags      map[string]bool
}

// Option sets a field while building a Record.
type Option func(*Record)

// New builds a Record. The id must be non-empty.
func New(id string, opts ...Option) (Record, error) {
	if id == "" {
		return Record{}, errors.New("record id is required")
	}
	r := Record{id: id}
	for _, o := range opts {
		o(&r)
	}
	return r, nil
}

// Searchable appends free-text fields, in match order.
func Searchable(values ...string) Option {
	return func(r *Record) {
		r.searchable = append(r.searchable, values...)
	}
}

// Category sets a single-valued discrete field. Empty values are ignored.
func Category(field, value string) Option {
	return func(r *Record) {
		if value == "" {
			return
		}
		if r.categories == nil {
			r.categories = make(map[string]string)
		}
		r.categories[field] = value
	}
}

// Values sets a multi-valued discrete field.
func Values(field string, values ...string) Option {
	return func(r *Record) {
		if len(values) == 0 {
			return
		}
		if r.values == nil {
			r.values = make(map[string][]string)
		}
		cp := make([]string, len(values))
		copy(cp, values)
		r.values[field] = cp
	}
}

// Number sets a numeric field.
func Number(field string, v float64) Option {
	return func(r *Record) {
		if r.numbers == nil {
			r.numbers = make(map[string]float64)
		}
		r.numbers[field] = v
	}
}

// Date sets a date field. Zero times are ignored.
func Date(field string, t time.Time) Option {
	return func(r *Record) {
		if t.IsZero() {
			return
		}
		if r.dates == nil {
			r.dates = make(map[string]time.Time)
		}
		r.dates[field] = t
	}
}

// Flag sets a boolean field. false is a value, not absence.
func Flag(field string, b bool) Option {
	return func(r *Record) {
		if r.flags == nil {
			r.flags = make(map[string]bool)
		}
		r.flags[field] = b
	}
}

// ID returns the stable identifier.
func (r Record) ID() string { return r.id }

// Searchable returns the free-text fields.
func (r Record) Searchable() []string { return r.searchable }

// Category returns a single-valued field.
func (r Record) Category(field string) (string, bool) {
	v, ok := r.categories[field]
	return v, ok
}

// Values returns a multi-valued field.
func (r Record) Values(field string) ([]string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Set returns the discrete values of a field: the multi-valued set when present,
// otherwise the categorical value as a one-element set.
func (r Record) Set(field string) []string {
	if v, ok := r.values[field]; ok {
		return v
	}
	if v, ok := r.categories[field]; ok {
		return []string{v}
	}
	return nil
}

// Number returns a numeric field.
func (r Record) Number(field string) (float64, bool) {
	v, ok := r.numbers[field]
	return v, ok
}

// Date returns a date field.
func (r Record) Date(field string) (time.Time, bool) {
	v, ok := r.dates[field]
	return v, ok
}

// Flag returns a boolean field.
func (r Record) Flag(field string) (value, ok bool) {
	value, ok = r.flags[field]
	return value, ok
}

// IDs returns the ids of records in order.
func IDs(records []Record) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].id
	}
	return out
}

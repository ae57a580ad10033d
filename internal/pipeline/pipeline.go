// Package pipeline runs the filter-then-sort query over a record collection.
//
// Every function is pure: inputs are never mutated and each call returns a
// fresh slice, so callers can replace their displayed result wholesale.
package pipeline

import (
	"slices"

	"github.com/kailas-cloud/safeexplore/internal/domain/query/filter"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/sortkey"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// ApplyFilters returns the records satisfying every active condition, in input order.
func ApplyFilters(records []record.Record, criteria filter.Criteria) []record.Record {
	out := make([]record.Record, 0, len(records))
	if criteria.IsEmpty() {
		return append(out, records...)
	}
	match := criteria.Matcher()
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ApplySort returns records ordered by spec. Equal records keep their input order;
// the identity spec returns a copy in input order.
func ApplySort(records []record.Record, spec sortkey.Spec) []record.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []record.Record{}
	}
	if spec.IsIdentity() {
		return out
	}
	slices.SortStableFunc(out, spec.Compare)
	return out
}

// Run filters then sorts. Sorting only ever sees retained records.
func Run(records []record.Record, criteria filter.Criteria, spec sortkey.Spec) []record.Record {
	return ApplySort(ApplyFilters(records, criteria), spec)
}

// Select runs the pipeline over typed items, projecting each through view once.
// The returned items are the retained inputs in result order.
func Select[T any](items []T, view func(T) record.Record, criteria filter.Criteria, spec sortkey.Spec) []T {
	type pair struct {
		item T
		rec  record.Record
	}
	match := criteria.Matcher()
	kept := make([]pair, 0, len(items))
	for _, it := range items {
		r := view(it)
		if match(r) {
			kept = append(kept, pair{item: it, rec: r})
		}
	}
	if !spec.IsIdentity() {
		slices.SortStableFunc(kept, func(a, b pair) int { return spec.Compare(a.rec, b.rec) })
	}
	out := make([]T, len(kept))
	for i, p := range kept {
		out[i] = p.item
	}
	return out
}

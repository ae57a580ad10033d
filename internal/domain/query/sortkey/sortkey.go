// Package sortkey maps sort keys to comparators through a validated registry.
package sortkey

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

// Key names a sort order.
type Key string

// Order is the sort direction requested by the caller.
type Order string

// Order constants. OrderDefault uses the direction registered for the key.
const (
	OrderDefault Order = ""
	OrderAsc     Order = "asc"
	OrderDesc    Order = "desc"
)

// ParseOrder parses a direction; anything unrecognized is OrderDefault.
func ParseOrder(s string) Order {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case OrderAsc:
		return OrderAsc
	case OrderDesc:
		return OrderDesc
	default:
		return OrderDefault
	}
}

// Comparator orders two records by one field.
// aOK and bOK report whether each record has a comparable value.
type Comparator func(a, b record.Record) (c int, aOK, bOK bool)

// ByDate compares a date field chronologically.
func ByDate(field string) Comparator {
	return func(a, b record.Record) (int, bool, bool) {
		da, aok := a.Date(field)
		db, bok := b.Date(field)
		if !aok || !bok {
			return 0, aok, bok
		}
		return da.Compare(db), true, true
	}
}

// ByNumber compares a numeric field.
func ByNumber(field string) Comparator {
	return func(a, b record.Record) (int, bool, bool) {
		na, aok := a.Number(field)
		nb, bok := b.Number(field)
		if !aok || !bok {
			return 0, aok, bok
		}
		switch {
		case na < nb:
			return -1, true, true
		case na > nb:
			return 1, true, true
		default:
			return 0, true, true
		}
	}
}

// ByRank compares a categorical field by its position in table.
// Values outside the table count as missing.
func ByRank(field string, table rank.Table) Comparator {
	return func(a, b record.Record) (int, bool, bool) {
		ra, aok := rankOf(a, field, table)
		rb, bok := rankOf(b, field, table)
		if !aok || !bok {
			return 0, aok, bok
		}
		return ra - rb, true, true
	}
}

func rankOf(r record.Record, field string, table rank.Table) (int, bool) {
	v, ok := r.Category(field)
	if !ok {
		return 0, false
	}
	return table.Of(v)
}

// StringOption tunes ByString.
type StringOption func(*stringConfig)

type stringConfig struct {
	tag        language.Tag
	ignoreCase bool
}

// WithLanguage sets the collation locale (default English).
func WithLanguage(tag language.Tag) StringOption {
	return func(c *stringConfig) { c.tag = tag }
}

// IgnoreCase makes the collation case-insensitive.
func IgnoreCase() StringOption {
	return func(c *stringConfig) { c.ignoreCase = true }
}

// ByString compares a categorical field with locale-aware collation.
func ByString(field string, opts ...StringOption) Comparator {
	cfg := stringConfig{tag: language.English}
	for _, o := range opts {
		o(&cfg)
	}
	var copts []collate.Option
	if cfg.ignoreCase {
		copts = append(copts, collate.IgnoreCase)
	}
	// collate.Collator keeps internal buffers and is not safe for concurrent use.
	pool := &sync.Pool{New: func() any { return collate.New(cfg.tag, copts...) }}

	return func(a, b record.Record) (int, bool, bool) {
		sa, aok := a.Category(field)
		sb, bok := b.Category(field)
		if !aok || !bok {
			return 0, aok, bok
		}
		col := pool.Get().(*collate.Collator)
		defer pool.Put(col)
		return col.CompareString(sa, sb), true, true
	}
}

// Entry registers a comparator under a key. Desc sets the default direction.
type Entry struct {
	Key     Key
	Compare Comparator
	Desc    bool
}

// Registry resolves sort keys. The first entry is the default key.
type Registry struct {
	entries map[Key]Entry
	order   []Key
}

// NewRegistry validates entries: keys must be non-empty and unique, comparators non-nil.
func NewRegistry(entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("sort registry needs at least one entry")
	}
	r := &Registry{entries: make(map[Key]Entry, len(entries))}
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("sort key is required")
		}
		if e.Compare == nil {
			return nil, fmt.Errorf("sort key %q has no comparator", e.Key)
		}
		if _, dup := r.entries[e.Key]; dup {
			return nil, fmt.Errorf("duplicate sort key %q", e.Key)
		}
		r.entries[e.Key] = e
		r.order = append(r.order, e.Key)
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on a configuration error.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

// Default returns the first registered key.
func (r *Registry) Default() Key { return r.order[0] }

// Has reports whether key is registered.
func (r *Registry) Has(key Key) bool {
	_, ok := r.entries[key]
	return ok
}

// Spec resolves key strictly. An empty key selects the default key.
func (r *Registry) Spec(key Key, order Order) (Spec, error) {
	if key == "" {
		key = r.Default()
	}
	e, ok := r.entries[key]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", domain.ErrUnknownSortKey, key)
	}
	desc := e.Desc
	switch order {
	case OrderAsc:
		desc = false
	case OrderDesc:
		desc = true
	}
	return Spec{key: key, cmp: e.Compare, desc: desc}, nil
}

// Resolve is the lenient form of Spec: an unknown key yields the identity spec and ok=false.
func (r *Registry) Resolve(key Key, order Order) (Spec, bool) {
	s, err := r.Spec(key, order)
	if err != nil {
		return Spec{key: key}, false
	}
	return s, true
}

// Spec is a resolved sort order. The zero value is the identity order.
type Spec struct {
	key  Key
	cmp  Comparator
	desc bool
}

// Key returns the requested key.
func (s Spec) Key() Key { return s.key }

// Desc reports whether the order is descending.
func (s Spec) Desc() bool { return s.desc }

// IsIdentity reports whether the spec leaves order unchanged.
func (s Spec) IsIdentity() bool { return s.cmp == nil }

// Compare orders a before b when negative. Records missing the value sort
// after records that have it, in both directions.
func (s Spec) Compare(a, b record.Record) int {
	if s.cmp == nil {
		return 0
	}
	c, aok, bok := s.cmp(a, b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	if s.desc {
		return -c
	}
	return c
}

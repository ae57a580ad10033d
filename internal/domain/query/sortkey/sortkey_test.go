package sortkey

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/query/rank"
	"github.com/kailas-cloud/safeexplore/internal/domain/record"
)

func rec(t *testing.T, id string, opts ...record.Option) record.Record {
	t.Helper()
	r, err := record.New(id, opts...)
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	return r
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// --- Registry construction ---

func TestNewRegistry_Validation(t *testing.T) {
	cmp := ByNumber("rating")
	tests := []struct {
		name    string
		entries []Entry
		errSub  string
	}{
		{"empty", nil, "at least one"},
		{"blank key", []Entry{{Key: "", Compare: cmp}}, "key is required"},
		{"nil comparator", []Entry{{Key: "rating"}}, "no comparator"},
		{"duplicate", []Entry{{Key: "rating", Compare: cmp}, {Key: "rating", Compare: cmp}}, "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.entries...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error = %q, want substring %q", err, tt.errSub)
			}
		})
	}
}

func TestMustRegistry_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustRegistry()
}

func TestRegistry_SpecAndResolve(t *testing.T) {
	reg := MustRegistry(
		Entry{Key: "recommended", Compare: ByNumber("popularity"), Desc: true},
		Entry{Key: "rating", Compare: ByNumber("rating")},
	)

	if reg.Default() != "recommended" {
		t.Errorf("Default() = %q", reg.Default())
	}
	if keys := reg.Keys(); len(keys) != 2 || keys[1] != "rating" {
		t.Errorf("Keys() = %v", keys)
	}

	s, err := reg.Spec("", OrderDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Key() != "recommended" || !s.Desc() {
		t.Errorf("default spec = %q desc=%v", s.Key(), s.Desc())
	}

	s, _ = reg.Spec("recommended", OrderAsc)
	if s.Desc() {
		t.Error("explicit asc should override default direction")
	}

	_, err = reg.Spec("bogus", OrderDefault)
	if !errors.Is(err, domain.ErrUnknownSortKey) {
		t.Errorf("expected ErrUnknownSortKey, got %v", err)
	}

	s, ok := reg.Resolve("bogus", OrderDefault)
	if ok || !s.IsIdentity() {
		t.Errorf("Resolve(bogus) ok=%v identity=%v", ok, s.IsIdentity())
	}
	if s.Key() != "bogus" {
		t.Errorf("identity spec should keep requested key, got %q", s.Key())
	}
}

func TestParseOrder(t *testing.T) {
	tests := map[string]Order{"asc": OrderAsc, " DESC ": OrderDesc, "": OrderDefault, "sideways": OrderDefault}
	for in, want := range tests {
		if got := ParseOrder(in); got != want {
			t.Errorf("ParseOrder(%q) = %q, want %q", in, got, want)
		}
	}
}

// --- Comparators ---

func TestSpec_MissingSortsLastBothDirections(t *testing.T) {
	reg := MustRegistry(Entry{Key: "due-date", Compare: ByDate("dueDate")})
	with := rec(t, "a", record.Date("dueDate", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	without := rec(t, "b")

	for _, order := range []Order{OrderAsc, OrderDesc} {
		s, _ := reg.Spec("due-date", order)
		if s.Compare(with, without) >= 0 {
			t.Errorf("%s: record with value should sort first", order)
		}
		if s.Compare(without, with) <= 0 {
			t.Errorf("%s: record without value should sort last", order)
		}
		if s.Compare(without, rec(t, "c")) != 0 {
			t.Errorf("%s: two missing values compare equal", order)
		}
	}
}

func TestByDate(t *testing.T) {
	early := rec(t, "a", record.Date("d", time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)))
	late := rec(t, "b", record.Date("d", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	c, _, _ := ByDate("d")(early, late)
	if c >= 0 {
		t.Errorf("early vs late = %d", c)
	}
}

func TestByRank(t *testing.T) {
	cmp := ByRank("priority", rank.Priority)
	high := rec(t, "h", record.Category("priority", "high"))
	low := rec(t, "l", record.Category("priority", "low"))
	odd := rec(t, "o", record.Category("priority", "urgent"))

	if c, _, _ := cmp(high, low); c >= 0 {
		t.Errorf("high vs low = %d", c)
	}
	if _, _, ok := cmp(high, odd); ok {
		t.Error("value outside rank table must count as missing")
	}
}

func TestByString_Collation(t *testing.T) {
	s := Spec{cmp: ByString("name")}
	a := rec(t, "1", record.Category("name", "apple"))
	b := rec(t, "2", record.Category("name", "Banana"))
	e := rec(t, "3", record.Category("name", "Éclair"))

	if s.Compare(a, b) >= 0 {
		t.Error("apple should sort before Banana under collation")
	}
	if s.Compare(e, rec(t, "4", record.Category("name", "Fig"))) >= 0 {
		t.Error("Éclair should sort with E, before Fig")
	}
}

func TestByString_CaseSensitivity(t *testing.T) {
	lower := rec(t, "1", record.Category("name", "visa"))
	upper := rec(t, "2", record.Category("name", "Visa"))

	sensitive := Spec{cmp: ByString("name", WithLanguage(language.English))}
	if sensitive.Compare(lower, upper) == 0 {
		t.Error("case-sensitive collation should distinguish visa/Visa")
	}
	insensitive := Spec{cmp: ByString("name", IgnoreCase())}
	if insensitive.Compare(lower, upper) != 0 {
		t.Error("IgnoreCase collation should treat visa/Visa as equal")
	}
}

func TestByNumber_Desc(t *testing.T) {
	reg := MustRegistry(Entry{Key: "rating", Compare: ByNumber("rating")})
	lo := rec(t, "lo", record.Number("rating", 4.2))
	hi := rec(t, "hi", record.Number("rating", 4.9))

	asc, _ := reg.Spec("rating", OrderAsc)
	desc, _ := reg.Spec("rating", OrderDesc)
	if sign(asc.Compare(lo, hi)) != -1 || sign(desc.Compare(lo, hi)) != 1 {
		t.Error("direction not applied")
	}
	if asc.Compare(lo, lo) != 0 {
		t.Error("equal values must compare 0")
	}
}

func TestIdentitySpec(t *testing.T) {
	var s Spec
	if !s.IsIdentity() {
		t.Error("zero spec should be identity")
	}
	if s.Compare(rec(t, "a"), rec(t, "b")) != 0 {
		t.Error("identity compare must be 0")
	}
}

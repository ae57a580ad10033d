package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/safeexplore/internal/db/memory"
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	"github.com/kailas-cloud/safeexplore/internal/repository/catalog"
	prefsrepo "github.com/kailas-cloud/safeexplore/internal/repository/prefs"
	assistantuc "github.com/kailas-cloud/safeexplore/internal/usecase/assistant"
	countriesuc "github.com/kailas-cloud/safeexplore/internal/usecase/countries"
	exploreuc "github.com/kailas-cloud/safeexplore/internal/usecase/explore"
	finderuc "github.com/kailas-cloud/safeexplore/internal/usecase/finder"
	healthuc "github.com/kailas-cloud/safeexplore/internal/usecase/health"
	lawsuc "github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	prefsuc "github.com/kailas-cloud/safeexplore/internal/usecase/prefs"
	trackeruc "github.com/kailas-cloud/safeexplore/internal/usecase/tracker"
)

func newTestRouter(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	cat := catalog.Seed()
	store := memory.New()
	countries := countriesuc.New(cat)
	srv := NewServer(
		trackeruc.New(cat),
		exploreuc.New(cat),
		finderuc.New(cat),
		lawsuc.New(cat),
		countries,
		prefsuc.New(prefsrepo.New(store, ""), prefsuc.WithCountries(countries)),
		assistantuc.New(domassist.New()),
		healthuc.New(store, cat),
		opts...,
	)
	r := gochi.NewRouter()
	srv.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func TestListDocuments_OverdueAsOf(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/v1/documents?status=overdue&now=2024-02-26", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decode[ListResponse[Document]](t, rr)
	if resp.Count != 1 || resp.Items[0].ID != "academic-transcripts" {
		t.Errorf("unexpected overdue set: %+v", resp.Items)
	}
	if resp.Total != 5 {
		t.Errorf("total = %d, want 5", resp.Total)
	}
}

func TestListDocuments_UnknownSortDegrades(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/v1/documents?sort=banana", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	resp := decode[ListResponse[Document]](t, rr)
	if resp.SortApplied || resp.Sort != "" {
		t.Errorf("sort_applied=%v sort=%q", resp.SortApplied, resp.Sort)
	}
	if resp.Count != 5 || resp.Items[0].ID != "passport" {
		t.Errorf("expected catalog order, got %+v", resp.Items)
	}
}

func TestListDocuments_BadNow(t *testing.T) {
	rr := do(t, newTestRouter(t), http.MethodGet, "/api/v1/documents?now=yesterday", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
	if e := decode[ErrorResponse](t, rr); e.Code != ErrorCodeBadRequest {
		t.Errorf("code = %q", e.Code)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	rr := do(t, newTestRouter(t), http.MethodGet, "/api/v1/documents/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	if e := decode[ErrorResponse](t, rr); e.Code != ErrorCodeNotFound || e.Message != "not found" {
		t.Errorf("error = %+v", e)
	}
}

func TestDocumentProgressAndDeadlines(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/documents/progress", "")
	p := decode[Progress](t, rr)
	if p.Total != 5 || p.Completed != 2 || p.Percentage != 40 {
		t.Errorf("progress = %+v", p)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/documents/deadlines?limit=2&now=2024-02-20", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	ds := decode[Items[Deadline]](t, rr)
	if len(ds.Items) != 2 || ds.Items[0].ID != "academic-transcripts" {
		t.Errorf("deadlines = %+v", ds.Items)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/documents/deadlines?limit=-1", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("negative limit: status %d", rr.Code)
	}
}

func TestListExperiences_Filters(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/v1/experiences?price_range=free&price_range=budget&sort=rating&order=desc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decode[ListResponse[Experience]](t, rr)
	if !resp.SortApplied || resp.Sort != "rating" {
		t.Errorf("sort = %q applied=%v", resp.Sort, resp.SortApplied)
	}
	for i, e := range resp.Items {
		if e.PriceRange != "free" && e.PriceRange != "budget" {
			t.Errorf("unexpected price range %q", e.PriceRange)
		}
		if i > 0 && e.Rating > resp.Items[i-1].Rating {
			t.Errorf("not sorted by rating desc: %+v", resp.Items)
		}
	}
}

func TestListExperiences_CommaSeparatedEqualsExploded(t *testing.T) {
	h := newTestRouter(t)
	a := decode[ListResponse[Experience]](t, do(t, h, http.MethodGet, "/api/v1/experiences?price_range=free,budget", ""))
	b := decode[ListResponse[Experience]](t, do(t, h, http.MethodGet, "/api/v1/experiences?price_range=free&price_range=budget", ""))
	if a.Count != b.Count || a.Count == 0 {
		t.Errorf("comma form %d, exploded form %d", a.Count, b.Count)
	}
}

func TestListExperiences_BadParams(t *testing.T) {
	h := newTestRouter(t)
	for _, target := range []string{
		"/api/v1/experiences?min_rating=high",
		"/api/v1/experiences?lat=52.5",
		"/api/v1/experiences?lat=152.5&lng=13.4",
	} {
		if rr := do(t, h, http.MethodGet, target, ""); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, rr.Code)
		}
	}
}

func TestListServices(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/v1/services?open_now=true&category=healthcare", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decode[ListResponse[Service]](t, rr)
	for _, s := range resp.Items {
		if !s.Open || s.Category != "healthcare" {
			t.Errorf("unexpected service %+v", s)
		}
	}

	closed := decode[ListResponse[Service]](t, do(t, h, http.MethodGet, "/api/v1/services?open_now=false", ""))
	for _, s := range closed.Items {
		if s.Open {
			t.Errorf("open_now=false returned open service %s", s.ID)
		}
	}
	all := decode[ListResponse[Service]](t, do(t, h, http.MethodGet, "/api/v1/services", ""))
	if len(closed.Items) == 0 || len(closed.Items) >= len(all.Items) {
		t.Errorf("open_now=false should narrow: %d of %d", len(closed.Items), len(all.Items))
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/services?open_now=maybe", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("bad bool: status %d", rr.Code)
	}

	cats := decode[Items[ServiceCategory]](t, do(t, h, http.MethodGet, "/api/v1/services/categories", ""))
	if len(cats.Items) != 7 {
		t.Errorf("categories = %d", len(cats.Items))
	}
	contacts := decode[Items[EmergencyContact]](t, do(t, h, http.MethodGet, "/api/v1/emergency-contacts", ""))
	if len(contacts.Items) != 3 {
		t.Errorf("contacts = %d", len(contacts.Items))
	}
}

func TestEmergencyPhrases(t *testing.T) {
	h := newTestRouter(t)
	books := decode[Items[PhraseBook]](t, do(t, h, http.MethodGet, "/api/v1/emergency-phrases", ""))
	if len(books.Items) != 3 {
		t.Fatalf("phrase books = %d", len(books.Items))
	}

	rr := do(t, h, http.MethodGet, "/api/v1/emergency-phrases/es-ES", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	b := decode[PhraseBook](t, rr)
	if b.Language != "Spanish" || len(b.Phrases) != 8 || b.Phrases[1].Translation != "Necesito un médico" {
		t.Errorf("spanish = %+v", b)
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/emergency-phrases/klingon", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown language: status %d", rr.Code)
	}
}

func TestCountries(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodGet, "/api/v1/countries?search=united", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decode[ListResponse[Country]](t, rr)
	if resp.Count != 2 || resp.Items[0].Code != "GB" || resp.Items[1].Code != "US" || resp.Total != 10 {
		t.Errorf("search united = %+v", resp)
	}
	if resp.Sort != "name" || !resp.SortApplied {
		t.Errorf("sort = %q applied=%v", resp.Sort, resp.SortApplied)
	}

	resp = decode[ListResponse[Country]](t, do(t, h, http.MethodGet, "/api/v1/countries?continent=Oceania", ""))
	if resp.Count != 1 || resp.Items[0].Code != "AU" {
		t.Errorf("oceania = %+v", resp.Items)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/countries/jp", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get: status %d", rr.Code)
	}
	if c := decode[Country](t, rr); c.Name != "Japan" || len(c.Cities) == 0 {
		t.Errorf("japan = %+v", c)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/countries/BR", ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown country: status %d", rr.Code)
	}
}

func TestFeaturedDestinations(t *testing.T) {
	h := newTestRouter(t)
	tests := []struct {
		target string
		want   []string
	}{
		{"/api/v1/countries/featured", []string{"Paris", "Tokyo", "Rome"}},
		{"/api/v1/countries/featured?user_type=tourist", []string{"Paris", "Tokyo", "Rome"}},
		{"/api/v1/countries/featured?user_type=immigrant", []string{"Toronto", "Berlin", "Sydney"}},
	}
	for _, tt := range tests {
		rr := do(t, h, http.MethodGet, tt.target, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tt.target, rr.Code)
		}
		got := decode[Items[Destination]](t, rr)
		cities := make([]string, len(got.Items))
		for i, d := range got.Items {
			cities[i] = d.City
		}
		if strings.Join(cities, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%s: cities = %v, want %v", tt.target, cities, tt.want)
		}
	}
}

func TestLawGuide(t *testing.T) {
	h := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/api/v1/laws?filters=critical", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	g := decode[LawGuide](t, rr)
	if g.TotalLaws == 0 || g.TotalLaws != g.CriticalLaws {
		t.Errorf("critical filter: total=%d critical=%d", g.TotalLaws, g.CriticalLaws)
	}
	for _, gr := range g.Groups {
		if len(gr.Laws) == 0 {
			t.Errorf("group %s should have been dropped", gr.ID)
		}
	}

	if rr := do(t, h, http.MethodGet, "/api/v1/laws/traffic-1", ""); rr.Code != http.StatusOK {
		t.Errorf("get law: status %d", rr.Code)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/api/v1/preferences/default/selectedCountry", `{"value":"de"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("put: status %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, "/api/v1/preferences/default/selectedCountry", "")
	if p := decode[Preference](t, rr); p.Value != "DE" {
		t.Errorf("get = %+v", p)
	}

	list := decode[Items[Preference]](t, do(t, h, http.MethodGet, "/api/v1/preferences/default", ""))
	if len(list.Items) != 1 {
		t.Errorf("list = %+v", list.Items)
	}

	profiles := decode[Items[string]](t, do(t, h, http.MethodGet, "/api/v1/preferences", ""))
	if len(profiles.Items) != 1 || profiles.Items[0] != "default" {
		t.Errorf("profiles = %v", profiles.Items)
	}

	for range 2 {
		if rr := do(t, h, http.MethodDelete, "/api/v1/preferences/default/selectedCountry", ""); rr.Code != http.StatusNoContent {
			t.Fatalf("delete: status %d", rr.Code)
		}
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/preferences/default/selectedCountry", ""); rr.Code != http.StatusNotFound {
		t.Errorf("after delete: status %d", rr.Code)
	}
}

func TestPreferences_Validation(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPut, "/api/v1/preferences/default/9lives", `{"value":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad key: status %d", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	if body["code"] != string(ErrorCodeValidationFailed) || body["key"] != "9lives" {
		t.Errorf("body = %v", body)
	}

	rr = do(t, h, http.MethodPut, "/api/v1/preferences/default/selectedCountry", `{"value":"germany"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown country: status %d", rr.Code)
	}
	if body := decode[map[string]any](t, rr); body["key"] != "selectedCountry" {
		t.Errorf("body = %v", body)
	}

	if rr := do(t, h, http.MethodPut, "/api/v1/preferences/default/language", `{}`); rr.Code != http.StatusBadRequest {
		t.Errorf("missing value: status %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPut, "/api/v1/preferences/default/language", `{"value":`); rr.Code != http.StatusBadRequest {
		t.Errorf("broken json: status %d", rr.Code)
	}
}

func TestAssistant(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, http.MethodPost, "/api/v1/assistant/messages", `{"text":"What documents do I need?"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	reply := decode[Reply](t, rr)
	if reply.Topic != "visa" || reply.ID == "" || len(reply.QuickActions) == 0 {
		t.Errorf("reply = %+v", reply)
	}

	if rr := do(t, h, http.MethodPost, "/api/v1/assistant/messages", `{"text":"  "}`); rr.Code != http.StatusBadRequest {
		t.Errorf("empty message: status %d", rr.Code)
	}

	rr = do(t, h, http.MethodPost, "/api/v1/assistant/actions", `{"action":"find_police"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("action: status %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, "/api/v1/assistant/actions", `{"action":"teleport"}`); rr.Code != http.StatusNotFound {
		t.Errorf("unknown action: status %d", rr.Code)
	}

	welcome := decode[Items[string]](t, do(t, h, http.MethodGet, "/api/v1/assistant/welcome", ""))
	if len(welcome.Items) != 4 {
		t.Errorf("welcome = %v", welcome.Items)
	}
}

func TestAssistant_RateLimited(t *testing.T) {
	h := newTestRouter(t, WithAssistantLimiter(NewRateLimiter(0.001, 1)))

	if rr := do(t, h, http.MethodPost, "/api/v1/assistant/messages", `{"text":"hi"}`); rr.Code != http.StatusCreated {
		t.Fatalf("first: status %d", rr.Code)
	}
	rr := do(t, h, http.MethodPost, "/api/v1/assistant/messages", `{"text":"hi"}`)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second: status %d, want 429", rr.Code)
	}
	if e := decode[ErrorResponse](t, rr); e.Code != ErrorCodeRateLimited {
		t.Errorf("code = %q", e.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/assistant/welcome", ""); rr.Code != http.StatusOK {
		t.Errorf("welcome is not limited: status %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	resp := decode[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["storage"] != "ok" || resp.Checks["catalog"] != "ok" {
		t.Errorf("health = %+v", resp)
	}
}

package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	"github.com/kailas-cloud/safeexplore/internal/domain/preference"
	"github.com/kailas-cloud/safeexplore/internal/logger"
	assistantuc "github.com/kailas-cloud/safeexplore/internal/usecase/assistant"
	countriesuc "github.com/kailas-cloud/safeexplore/internal/usecase/countries"
	exploreuc "github.com/kailas-cloud/safeexplore/internal/usecase/explore"
	finderuc "github.com/kailas-cloud/safeexplore/internal/usecase/finder"
	healthuc "github.com/kailas-cloud/safeexplore/internal/usecase/health"
	lawsuc "github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	prefsuc "github.com/kailas-cloud/safeexplore/internal/usecase/prefs"
	trackeruc "github.com/kailas-cloud/safeexplore/internal/usecase/tracker"
)

// maxPreferenceBody bounds a PUT preference body; values are capped well below it.
const maxPreferenceBody = 4 * preference.MaxValueSize

// maxMessageBody bounds an assistant message body.
const maxMessageBody = 16 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the SafeExplore HTTP API.
type Server struct {
	tracker       *trackeruc.Service
	explore       *exploreuc.Service
	finder        *finderuc.Service
	laws          *lawsuc.Service
	countries     *countriesuc.Service
	prefs         *prefsuc.Service
	assistant     *assistantuc.Service
	health        *healthuc.Service
	limiter       *RateLimiter
	loc           *time.Location
	errorHandlers []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLocation sets the timezone used to read date-only "now" parameters.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithAssistantLimiter rate limits the assistant endpoints.
func WithAssistantLimiter(l *RateLimiter) Option {
	return func(s *Server) { s.limiter = l }
}

// NewServer creates an HTTP API server.
func NewServer(
	tracker *trackeruc.Service,
	explore *exploreuc.Service,
	finder *finderuc.Service,
	laws *lawsuc.Service,
	countries *countriesuc.Service,
	prefs *prefsuc.Service,
	assistant *assistantuc.Service,
	health *healthuc.Service,
	opts ...Option,
) *Server {
	s := &Server{
		tracker:   tracker,
		explore:   explore,
		finder:    finder,
		laws:      laws,
		countries: countries,
		prefs:     prefs,
		assistant: assistant,
		health:    health,
		loc:       time.UTC,
	}
	for _, o := range opts {
		o(s)
	}
	s.errorHandlers = []errorHandler{
		preferenceErrorHandler,
		invalidQueryHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrInvalidPreference, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnknownSortKey, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r gochi.Router) {
		r.Route("/documents", func(r gochi.Router) {
			r.Get("/", s.ListDocuments)
			r.Get("/progress", s.DocumentProgress)
			r.Get("/deadlines", s.DocumentDeadlines)
			r.Get("/categories", s.DocumentCategories)
			r.Get("/{id}", s.GetDocument)
		})

		r.Get("/experiences", s.ListExperiences)
		r.Get("/experiences/{id}", s.GetExperience)

		r.Get("/services", s.ListServices)
		r.Get("/services/categories", s.ServiceCategories)
		r.Get("/emergency-contacts", s.EmergencyContacts)
		r.Get("/emergency-phrases", s.PhraseBooks)
		r.Get("/emergency-phrases/{language}", s.GetPhraseBook)

		r.Get("/countries", s.ListCountries)
		r.Get("/countries/featured", s.FeaturedDestinations)
		r.Get("/countries/{code}", s.GetCountry)

		r.Get("/laws", s.LawGuide)
		r.Get("/laws/{id}", s.GetLaw)

		r.Route("/preferences", func(r gochi.Router) {
			r.Get("/", s.ListProfiles)
			r.Get("/{profile}", s.ListPreferences)
			r.Delete("/{profile}", s.ClearPreferences)
			r.Get("/{profile}/{key}", s.GetPreference)
			r.Put("/{profile}/{key}", s.SetPreference)
			r.Delete("/{profile}/{key}", s.DeletePreference)
		})

		r.Route("/assistant", func(r gochi.Router) {
			r.Get("/welcome", s.AssistantWelcome)
			r.Group(func(r gochi.Router) {
				r.Use(s.limiter.Middleware)
				r.Post("/messages", s.PostMessage)
				r.Post("/actions", s.PostAction)
			})
		})
	})
}

// --- Documents ---

// ListDocuments handles GET /api/v1/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q, err := documentQueryFromRequest(r, s.loc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.tracker.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(res, documentToDTO))
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.tracker.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToDTO(doc))
}

// DocumentProgress handles GET /api/v1/documents/progress.
func (s *Server) DocumentProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.tracker.Progress(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Progress{Total: p.Total, Completed: p.Completed, Percentage: p.Percentage})
}

// DocumentDeadlines handles GET /api/v1/documents/deadlines.
func (s *Server) DocumentDeadlines(w http.ResponseWriter, r *http.Request) {
	limit, now, err := deadlineParamsFromRequest(r, s.loc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	ds, err := s.tracker.Deadlines(r.Context(), limit, now)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(ds, deadlineToDTO))
}

// DocumentCategories handles GET /api/v1/documents/categories.
func (s *Server) DocumentCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.tracker.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(cats, categoryProgressToDTO))
}

// --- Experiences ---

// ListExperiences handles GET /api/v1/experiences.
func (s *Server) ListExperiences(w http.ResponseWriter, r *http.Request) {
	q, err := experienceQueryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.explore.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(res, experienceToDTO))
}

// GetExperience handles GET /api/v1/experiences/{id}.
func (s *Server) GetExperience(w http.ResponseWriter, r *http.Request) {
	e, err := s.explore.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experienceToDTO(e))
}

// --- Local services ---

// ListServices handles GET /api/v1/services.
func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	q, err := serviceQueryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.finder.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(res, serviceToDTO))
}

// ServiceCategories handles GET /api/v1/services/categories.
func (s *Server) ServiceCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.finder.Categories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(cats, serviceCategoryToDTO))
}

// EmergencyContacts handles GET /api/v1/emergency-contacts.
func (s *Server) EmergencyContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.finder.EmergencyContacts(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(contacts, emergencyContactToDTO))
}

// PhraseBooks handles GET /api/v1/emergency-phrases.
func (s *Server) PhraseBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.finder.PhraseBooks(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(books, phraseBookToDTO))
}

// GetPhraseBook handles GET /api/v1/emergency-phrases/{language}.
func (s *Server) GetPhraseBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.finder.PhraseBook(r.Context(), gochi.URLParam(r, "language"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, phraseBookToDTO(b))
}

// --- Countries ---

// ListCountries handles GET /api/v1/countries.
func (s *Server) ListCountries(w http.ResponseWriter, r *http.Request) {
	q, err := countryQueryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	res, err := s.countries.List(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(res, countryToDTO))
}

// GetCountry handles GET /api/v1/countries/{code}.
func (s *Server) GetCountry(w http.ResponseWriter, r *http.Request) {
	c, err := s.countries.Get(r.Context(), gochi.URLParam(r, "code"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countryToDTO(c))
}

// FeaturedDestinations handles GET /api/v1/countries/featured?user_type=.
func (s *Server) FeaturedDestinations(w http.ResponseWriter, r *http.Request) {
	b := &binder{r: r}
	var userType string
	bindValue(b, "user_type", &userType)
	if b.err != nil {
		s.handleDomainError(w, r, b.err)
		return
	}
	dests, err := s.countries.Featured(r.Context(), userType)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(dests, destinationToDTO))
}

// --- Laws ---

// LawGuide handles GET /api/v1/laws.
func (s *Server) LawGuide(w http.ResponseWriter, r *http.Request) {
	q, err := lawQueryFromRequest(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	g, err := s.laws.Guide(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guideToDTO(g))
}

// GetLaw handles GET /api/v1/laws/{id}.
func (s *Server) GetLaw(w http.ResponseWriter, r *http.Request) {
	l, err := s.laws.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lawToDTO(l))
}

// --- Preferences ---

// ListProfiles handles GET /api/v1/preferences.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.prefs.Profiles(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Items[string]{Items: nonNil(profiles)})
}

// ListPreferences handles GET /api/v1/preferences/{profile}.
func (s *Server) ListPreferences(w http.ResponseWriter, r *http.Request) {
	ps, err := s.prefs.List(r.Context(), gochi.URLParam(r, "profile"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsOf(ps, preferenceToDTO))
}

// ClearPreferences handles DELETE /api/v1/preferences/{profile}.
func (s *Server) ClearPreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.prefs.Clear(r.Context(), gochi.URLParam(r, "profile")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreference handles GET /api/v1/preferences/{profile}/{key}.
func (s *Server) GetPreference(w http.ResponseWriter, r *http.Request) {
	p, err := s.prefs.Get(r.Context(), gochi.URLParam(r, "profile"), gochi.URLParam(r, "key"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferenceToDTO(p))
}

// SetPreference handles PUT /api/v1/preferences/{profile}/{key}.
func (s *Server) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req SetPreferenceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreferenceBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "value is required")
		return
	}

	p, err := s.prefs.Set(r.Context(), gochi.URLParam(r, "profile"), gochi.URLParam(r, "key"), *req.Value)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preferenceToDTO(p))
}

// DeletePreference handles DELETE /api/v1/preferences/{profile}/{key}.
func (s *Server) DeletePreference(w http.ResponseWriter, r *http.Request) {
	if err := s.prefs.Delete(r.Context(), gochi.URLParam(r, "profile"), gochi.URLParam(r, "key")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Assistant ---

// AssistantWelcome handles GET /api/v1/assistant/welcome.
func (s *Server) AssistantWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Items[string]{Items: s.assistant.Welcome()})
}

// PostMessage handles POST /api/v1/assistant/messages.
func (s *Server) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	reply, err := s.assistant.Ask(r.Context(), req.Text, req.EmergencyMode)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, replyToDTO(reply))
}

// PostAction handles POST /api/v1/assistant/actions.
func (s *Server) PostAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	reply, err := s.assistant.Act(r.Context(), req.Action, req.EmergencyMode)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, replyToDTO(reply))
}

// --- Operational ---

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrUnknownSortKey,
		domain.ErrInvalidPreference,
		domain.ErrCatalogUnavailable,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// preferenceErrorHandler reports the rejected key and the reason.
func preferenceErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *domain.PreferenceError
	if !errors.As(err, &pe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":    ErrorCodeValidationFailed,
		"message": pe.Reason,
		"key":     pe.Key,
	})
	return true
}

// invalidQueryHandler echoes the validation detail; it only ever describes caller input.
func invalidQueryHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrInvalidQuery) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

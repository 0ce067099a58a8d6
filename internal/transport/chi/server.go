// Package chi exposes the HTTP API: movie search and catalog reads, query
// intent classification, health, and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/domain"
	"github.com/cinedex/cinedex/internal/metrics"
)

// Searcher resolves search requests to movies.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Movie, error)
}

// Cataloger serves whole-collection reads.
type Cataloger interface {
	FindAll(ctx context.Context, limit int) ([]domain.Movie, uint64, error)
	Genres(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (domain.CatalogStatistics, error)
}

// Classifier derives query intents.
type Classifier interface {
	Classify(ctx context.Context, query string, history []string) (domain.QueryIntent, error)
}

// SessionHistory records and recalls per-session queries.
type SessionHistory interface {
	Append(sessionID, query string)
	History(sessionID string) []string
}

// Readiness reports whether the collection is provisioned.
type Readiness interface {
	Ready() bool
}

// Server is the HTTP API server.
type Server struct {
	search   Searcher
	catalog  Cataloger
	intent   Classifier
	sessions SessionHistory
	ready    Readiness
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	catalog Cataloger,
	intent Classifier,
	sessions SessionHistory,
	ready Readiness,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:   search,
		catalog:  catalog,
		intent:   intent,
		sessions: sessions,
		ready:    ready,
		logger:   logger,
	}
}

// Router assembles the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/movies/search", s.SearchMovies)
	r.Get("/movies/genres", s.ListGenres)
	r.Get("/movies/stats", s.GetStatistics)
	r.Get("/movies", s.ListMovies)
	r.Post("/query/intent", s.ClassifyIntent)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// movieListResponse is the shared shape for search and listing endpoints.
type movieListResponse struct {
	Movies []domain.Movie `json:"movies"`
	Count  int            `json:"count"`
}

// SearchMovies handles GET /movies/search.
func (s *Server) SearchMovies(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	if sessionID := r.URL.Query().Get("sessionId"); sessionID != "" && req.Query != "" {
		s.sessions.Append(sessionID, req.Query)
	}

	movies, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movieListResponse{Movies: movies, Count: len(movies)})
}

// ListMovies handles GET /movies.
func (s *Server) ListMovies(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	movies, total, err := s.catalog.FindAll(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Movies []domain.Movie `json:"movies"`
		Count  int            `json:"count"`
		Total  uint64         `json:"total"`
	}{Movies: movies, Count: len(movies), Total: total})
}

// ListGenres handles GET /movies/genres.
func (s *Server) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.catalog.Genres(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Genres []string `json:"genres"`
	}{Genres: genres})
}

// GetStatistics handles GET /movies/stats.
func (s *Server) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Statistics(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// intentRequest is the POST /query/intent body.
type intentRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId,omitempty"`
}

// ClassifyIntent handles POST /query/intent.
func (s *Server) ClassifyIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	var history []string
	if req.SessionID != "" {
		history = s.sessions.History(req.SessionID)
	}

	result, err := s.intent.Classify(r.Context(), req.Query, history)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if req.SessionID != "" {
		s.sessions.Append(req.SessionID, req.Query)
	}

	writeJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /healthz. The process is alive as soon as it serves;
// readiness reflects collection provisioning.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	if !s.ready.Ready() {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, struct {
		Status string `json:"status"`
		Ready  bool   `json:"ready"`
	}{Status: status, Ready: s.ready.Ready()})
}

// searchRequestFromQuery parses and validates search query parameters.
func searchRequestFromQuery(r *http.Request) (domain.SearchRequest, error) {
	q := r.URL.Query()

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		return domain.SearchRequest{}, err
	}

	req := domain.SearchRequest{
		Query:    strings.TrimSpace(q.Get("q")),
		Language: strings.TrimSpace(q.Get("language")),
		Limit:    limit,
	}

	if raw := q.Get("genres"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				req.Genres = append(req.Genres, g)
			}
		}
	}

	if req.YearFrom, err = parseOptionalInt(q.Get("yearFrom"), "yearFrom"); err != nil {
		return domain.SearchRequest{}, err
	}
	if req.YearTo, err = parseOptionalInt(q.Get("yearTo"), "yearTo"); err != nil {
		return domain.SearchRequest{}, err
	}
	if req.YearFrom != nil && req.YearTo != nil && *req.YearFrom > *req.YearTo {
		return domain.SearchRequest{}, errors.New("yearFrom must not exceed yearTo")
	}

	if raw := q.Get("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 10 {
			return domain.SearchRequest{}, errors.New("minRating must be a number between 0 and 10")
		}
		req.MinRating = &v
	}

	return req, nil
}

// parseLimit applies the boundary rules: absent means the default, negative
// or non-numeric is rejected, values above the maximum are truncated.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return domain.DefaultLimit, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	if v < 0 {
		return 0, errors.New("limit must not be negative")
	}
	return domain.ClampLimit(v), nil
}

func parseOptionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &v, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", domain.ErrNotReady.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "validation_failed", domain.ErrInvalidRequest.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrEmbeddingProviderError), errors.Is(err, domain.ErrIntentProviderError):
		writeError(w, http.StatusBadGateway, "provider_error", "upstream provider error")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

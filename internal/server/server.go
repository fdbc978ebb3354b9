// Package server implements the Cumulus HTTP API.
//
// The API exposes the layout engine over chi:
//   - POST /api/v1/layout computes a layout for an inline item set
//   - /api/v1/clouds is CRUD for saved cloud documents
//   - GET /healthz and GET /metrics for operations
//
// Errors from pkg/errors are mapped to HTTP statuses by their code, so
// clients get machine-readable codes alongside the status.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/cumulus/pkg/cloud"
	"github.com/matzehuels/cumulus/pkg/errors"
	"github.com/matzehuels/cumulus/pkg/layout"
	"github.com/matzehuels/cumulus/pkg/pipeline"
	"github.com/matzehuels/cumulus/pkg/store"
)

// maxRequestBody bounds request payloads (item sets are small documents).
const maxRequestBody = 4 << 20 // 4 MiB

// Server holds the dependencies shared by all handlers.
type Server struct {
	store    store.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	registry *prometheus.Registry
}

// New creates an API server. A nil registry disables the /metrics endpoint.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger, registry *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    st,
		runner:   runner,
		logger:   logger,
		registry: registry,
	}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/clouds", func(r chi.Router) {
			r.Post("/", s.handleCreateCloud)
			r.Get("/", s.handleListClouds)
			r.Get("/{id}", s.handleGetCloud)
			r.Put("/{id}", s.handleUpdateCloud)
			r.Delete("/{id}", s.handleDeleteCloud)
		})
	})

	return r
}

// =============================================================================
// Request / Response Types
// =============================================================================

// layoutRequest is the payload for POST /api/v1/layout and cloud writes.
type layoutRequest struct {
	Name   string        `json:"name,omitempty"`
	Items  []layout.Item `json:"items"`
	Config cloud.Config  `json:"config,omitempty"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Layout
// =============================================================================

// handleLayout computes a layout for an inline item set without persisting it.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		return // response already written
	}

	set := layout.ItemSet{Name: req.Name, Items: req.Items}
	l, hit, err := s.computeLayout(r, set, req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "hit")
	}
	s.writeJSON(w, http.StatusOK, l)
}

// computeLayout runs the shared pipeline for an already validated set.
func (s *Server) computeLayout(r *http.Request, set layout.ItemSet, cfg cloud.Config) (layout.Layout, bool, error) {
	opts := pipeline.Options{
		Name:   set.Name,
		Layout: cfg,
		Logger: s.logger,
	}
	return s.runner.ComputeLayoutWithCacheInfo(r.Context(), set, opts)
}

// decodeLayoutRequest parses and validates the shared request payload.
// On error the response has already been written and a non-nil error returned.
func (s *Server) decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (layoutRequest, error) {
	var req layoutRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		e := errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
		s.writeError(w, r, e)
		return layoutRequest{}, e
	}
	if len(req.Items) == 0 {
		e := errors.New(errors.ErrCodeInvalidItems, "items are required")
		s.writeError(w, r, e)
		return layoutRequest{}, e
	}

	set := layout.ItemSet{Name: req.Name, Items: req.Items}
	if err := set.Validate(); err != nil {
		s.writeError(w, r, err)
		return layoutRequest{}, err
	}
	return req, nil
}

// =============================================================================
// Clouds CRUD
// =============================================================================

// handleCreateCloud computes a layout and persists it as a named cloud.
func (s *Server) handleCreateCloud(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		return
	}
	if req.Name == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidName, "cloud name is required"))
		return
	}

	set := layout.ItemSet{Name: req.Name, Items: req.Items}
	l, _, err := s.computeLayout(r, set, req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := store.NewDocument(req.Name, set, l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/clouds/"+doc.ID)
	s.writeJSON(w, http.StatusCreated, doc)
}

// handleListClouds returns summaries of all saved clouds.
func (s *Server) handleListClouds(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"clouds": summaries})
}

// handleGetCloud returns a saved cloud document.
func (s *Server) handleGetCloud(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// handleUpdateCloud replaces a cloud's item set and recomputes its layout.
func (s *Server) handleUpdateCloud(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	req, err := s.decodeLayoutRequest(w, r)
	if err != nil {
		return
	}
	if req.Name != "" {
		if err := errors.ValidateCloudName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
		doc.Name = req.Name
	}

	set := layout.ItemSet{Name: doc.Name, Items: req.Items}
	l, _, err := s.computeLayout(r, set, req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc.Items = set
	doc.Layout = l
	doc.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// handleDeleteCloud removes a saved cloud.
func (s *Server) handleDeleteCloud(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Responses
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps a structured error to an HTTP status and writes it.
// Unknown errors are logged and reported as opaque internal errors.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		s.writeJSON(w, status, errorResponse{Code: code, Message: "internal error"})
		return
	}

	s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "err", err)
	s.writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusForCode maps error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidItems,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeCloudNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeStorage, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

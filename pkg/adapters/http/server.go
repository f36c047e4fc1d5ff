// Package http exposes sessions, the catalog and snapshot streams over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the collaborators behind the HTTP API.
type Server struct {
	Sessions *session.Manager
	Registry *registry.Registry
	Catalog  *catalog.Catalog
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	version  string
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts /metrics for g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer wires a Server without building a router.
func NewServer(mgr *session.Manager, reg *registry.Registry, cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		Sessions: mgr,
		Registry: reg,
		Catalog:  cat,
		version:  "dev",
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(mgr *session.Manager, reg *registry.Registry, cat *catalog.Catalog, opts ...Option) http.Handler {
	return NewServer(mgr, reg, cat, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/modules", s.ListModules)
	r.Get("/modules/{id}/scenarios", s.ListScenarios)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/{action}", s.Control)
			r.Put("/speed", s.SetSpeed)
			r.Put("/scenario", s.SelectScenario)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionView is the body returned for a single session.
type SessionView struct {
	Session  *domain.Session `json:"session"`
	Snapshot domain.Snapshot `json:"snapshot,omitempty"`
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(s.version),
	})
}

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Catalog)
}

// ListModules handles GET /modules.
func (s *Server) ListModules(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Registry.List())
}

// ListScenarios handles GET /modules/{id}/scenarios.
func (s *Server) ListScenarios(w http.ResponseWriter, r *http.Request) {
	presets, err := s.Registry.Presets(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, presets)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body session.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidParameter, err))
		return
	}
	rec, err := s.Sessions.Create(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+rec.ID)
	s.writeJSON(w, http.StatusCreated, SessionView{Session: rec})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	rec, snap, err := s.Sessions.Current(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionView{Session: rec, Snapshot: snap})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Control handles POST /sessions/{id}/{play|pause|step|reset}.
func (s *Server) Control(w http.ResponseWriter, r *http.Request) {
	var fn func(*driver.Driver) error
	switch chi.URLParam(r, "action") {
	case "play":
		fn = (*driver.Driver).Play
	case "pause":
		fn = (*driver.Driver).Pause
	case "step":
		fn = (*driver.Driver).Step
	case "reset":
		fn = (*driver.Driver).Reset
	default:
		http.NotFound(w, r)
		return
	}
	s.control(w, r, fn)
}

type speedRequest struct {
	Speed float64 `json:"speed"`
}

// SetSpeed handles PUT /sessions/{id}/speed.
func (s *Server) SetSpeed(w http.ResponseWriter, r *http.Request) {
	var body speedRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidParameter, err))
		return
	}
	s.control(w, r, func(d *driver.Driver) error { return d.SetSpeed(body.Speed) })
}

type scenarioRequest struct {
	Scenario string `json:"scenario"`
}

// SelectScenario handles PUT /sessions/{id}/scenario.
func (s *Server) SelectScenario(w http.ResponseWriter, r *http.Request) {
	var body scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Scenario == "" {
		s.writeError(w, r, fmt.Errorf("%w: scenario is required", domain.ErrInvalidParameter))
		return
	}
	s.control(w, r, func(d *driver.Driver) error { return d.SelectScenario(body.Scenario) })
}

func (s *Server) control(w http.ResponseWriter, r *http.Request, fn func(*driver.Driver) error) {
	id := chi.URLParam(r, "id")
	rec, err := s.Sessions.Do(r.Context(), id, fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if msg, err := json.Marshal(rec); err == nil {
		s.Streams.Broadcast(id, Message{Event: "session", Data: msg})
	}
	s.writeJSON(w, http.StatusOK, SessionView{Session: rec})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUnknownModule),
		errors.Is(err, domain.ErrUnknownScenario):
		return http.StatusNotFound
	case errors.Is(err, driver.ErrClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "err", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

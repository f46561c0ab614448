package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pilahlab/pilah/internal/kb"
	"github.com/pilahlab/pilah/internal/store"
)

// Server is the pilah HTTP API server. Every mutating handler loads the
// persisted stores, applies the operation through the kb layer, and
// saves the result back — persistence is always an explicit step after
// mutation, never implicit.
type Server struct {
	db      *store.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, version string) *Server {
	s := &Server{
		db:      db,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/rules", s.handleListRules)
		r.Post("/rules", s.handleAddRule)
		r.Get("/rules/{ruleID}", s.handleGetRule)
		r.Patch("/rules/{ruleID}", s.handleUpdateRule)
		r.Delete("/rules/{ruleID}", s.handleDeleteRule)

		r.Get("/facts", s.handleListFacts)
		r.Post("/facts", s.handleAddFact)
		r.Delete("/facts/{token}", s.handleRemoveFact)

		r.Post("/infer", s.handleInfer)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

// loadRuleStore materializes the persisted rules into a validated store.
func (s *Server) loadRuleStore() (*kb.RuleStore, error) {
	rules, err := s.db.LoadRules()
	if err != nil {
		return nil, err
	}
	return kb.NewRuleStoreFrom(rules)
}

// loadFactStore materializes the persisted facts into a validated store.
func (s *Server) loadFactStore() (*kb.FactStore, error) {
	facts, err := s.db.LoadFacts()
	if err != nil {
		return nil, err
	}
	return kb.NewFactStoreFrom(facts)
}

// statusFor maps kb errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kb.ErrUnknownID), errors.Is(err, kb.ErrUnknownFact):
		return http.StatusNotFound
	case errors.Is(err, kb.ErrDuplicateID), errors.Is(err, kb.ErrDuplicateFact):
		return http.StatusConflict
	case errors.Is(err, kb.ErrInvalidCondition), errors.Is(err, kb.ErrInvalidConclusion),
		errors.Is(err, kb.ErrInvalidPriority), errors.Is(err, kb.ErrEmptyFact):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

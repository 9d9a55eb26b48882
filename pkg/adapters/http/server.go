package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/cursorkeep"
	"github.com/aretw0/cursorkeep/pkg/domain"
)

// Store defines the session store operations exposed for diagnostics.
type Store interface {
	Entries(ctx context.Context) (domain.Table, error)
	Get(ctx context.Context, key string) (domain.Entry, bool, error)
	Prune(ctx context.Context, retentionDays int) (int, error)
	RetentionDays() int
}

// Server serves a read-mostly view of the session table.
type Server struct {
	Store  Store
	Logger *slog.Logger
}

// NewHandler creates a new HTTP handler for the store.
// Metrics are served from gatherer at /metrics when it is not nil.
func NewHandler(store Store, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{Store: store, Logger: logger}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/entries", server.ListEntries)
	r.Get("/entries/lookup", server.LookupEntry)
	r.Post("/prune", server.Prune)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListEntries handles the GET /entries request.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	table, err := s.Store.Entries(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("ListEntries failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, table)
}

// LookupEntry handles the GET /entries/lookup?path=... request.
func (s *Server) LookupEntry(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "Missing path parameter", http.StatusBadRequest)
		return
	}

	entry, ok, err := s.Store.Get(r.Context(), path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("LookupEntry failed", "error", err)
		return
	}
	if !ok {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// Prune handles the POST /prune request. The horizon defaults to the store's.
func (s *Server) Prune(w http.ResponseWriter, r *http.Request) {
	days := s.Store.RetentionDays()
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid days parameter", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	removed, err := s.Store.Prune(r.Context(), days)
	if err != nil {
		http.Error(w, fmt.Sprintf("Prune error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Prune failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"removed": removed, "retention_days": days})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":            "cursorkeep",
		"version":        cursorkeep.Version,
		"retention_days": s.Store.RetentionDays(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}

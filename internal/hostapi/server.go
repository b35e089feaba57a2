// Package hostapi is a thin host adapter exposing a run's status and
// Prometheus metrics over HTTP via chi and promhttp.
package hostapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the snapshot reported by GET /status — set by the CLI driver
// when a run starts and again when it finishes.
type Status struct {
	RunID       string  `json:"run_id"`
	Generation  int     `json:"generation"`
	Estimate    float64 `json:"estimate"`
	BestFitness float64 `json:"best_fitness"`
	Done        bool    `json:"done"`
}

// Server is the hyperevo status/metrics HTTP server.
type Server struct {
	mu     sync.RWMutex
	status Status
}

// NewServer creates a new status/metrics server.
func NewServer() *Server {
	return &Server{}
}

// SetStatus replaces the reported status. Safe to call concurrently with
// requests in flight.
func (s *Server) SetStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Handler returns the chi router with /health, /status, and /metrics
// mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		status := s.status
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, status)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

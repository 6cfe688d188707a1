// Package admin exposes the operational HTTP surface: health, readiness,
// Prometheus metrics, and per-kind sync status.
package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/pipeline"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SyncTracker reports when a sync kind last completed successfully.
type SyncTracker interface {
	LastSync(kind string) (time.Time, bool)
}

// Server exposes health, readiness, metrics, and sync-status endpoints.
type Server struct {
	httpServer *http.Server
	syncs      SyncTracker
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /statusz routes. syncs may be nil, in which case /statusz reports no runs.
func NewServer(addr string, ready ReadinessChecker, syncs SyncTracker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		syncs:  syncs,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.HandleFunc("GET /statusz", s.handleStatus)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("admin server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// syncStatus is one kind's entry in the /statusz payload.
type syncStatus struct {
	LastSync *time.Time `json:"last_sync,omitempty"`
	Synced   bool       `json:"synced"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	kinds := []string{pipeline.KindRoster, pipeline.KindSchedule, pipeline.KindResults, pipeline.KindGameLog}
	body := make(map[string]syncStatus, len(kinds))
	for _, kind := range kinds {
		var entry syncStatus
		if s.syncs != nil {
			if t, ok := s.syncs.LastSync(kind); ok {
				entry = syncStatus{LastSync: &t, Synced: true}
			}
		}
		body[kind] = entry
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}

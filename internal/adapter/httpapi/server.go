// Package httpapi exposes the read-only query API over finished results,
// plus the operational health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jrendon/weather-aggregation/internal/report"
)

// Server serves query and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	svc        *report.Service
	logger     *slog.Logger
}

// NewServer creates the API server with all routes registered.
func NewServer(addr string, svc *report.Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /data/temperature", s.handleTemperature)
	mux.HandleFunc("GET /data/precipitation", s.handlePrecipitation)
	mux.HandleFunc("GET /data/summary", s.handleSummary)
	mux.HandleFunc("GET /data/cities", s.handleCities)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
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

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if err := s.svc.CheckReadiness(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleTemperature(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records := s.svc.Temperature(q)
	writeJSON(w, http.StatusOK, listResponse[report.TemperatureRecord]{
		Data: records,
		Metadata: metadata{
			TotalRecords: len(records),
			Filters:      filtersOf(q),
		},
	})
}

func (s *Server) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records := s.svc.Precipitation(q)
	writeJSON(w, http.StatusOK, listResponse[report.PrecipitationRecord]{
		Data: records,
		Metadata: metadata{
			TotalRecords: len(records),
			Filters:      filtersOf(q),
		},
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Summarize())
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	cities := s.svc.Cities()
	writeJSON(w, http.StatusOK, map[string]any{
		"cities":       cities,
		"total_cities": len(cities),
	})
}

type listResponse[T any] struct {
	Data     []T      `json:"data"`
	Metadata metadata `json:"metadata"`
}

type metadata struct {
	TotalRecords int               `json:"total_records"`
	Filters      map[string]string `json:"filters_applied"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

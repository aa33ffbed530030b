package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpgo/share-projector/internal/calculation"
	"github.com/rpgo/share-projector/internal/config"
	"github.com/rpgo/share-projector/internal/domain"
	"github.com/rpgo/share-projector/internal/output"
)

// formatKey selects a non-JSON rendering of the table, e.g. ?format=csv.
const formatKey = "format"

// Server answers projection requests over HTTP.
type Server struct {
	config  domain.Configuration
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// New creates a Server. The configuration supplies seed, workers, horizon count
// and baseline year; per-request parameters come from the query string.
func New(cfg domain.Configuration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:  cfg,
		logger:  logger,
		metrics: NewMetrics(),
		now:     time.Now,
	}
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// RegisterHTTPHandlers registers the server handlers on mux:
//
//	GET /api/projection
//	GET /metrics
//	GET /healthz
func (s *Server) RegisterHTTPHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/projection", s.handleProjection)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", s.handleHealth)
}

// Handler returns a mux with every handler registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterHTTPHandlers(mux)
	return mux
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// ProjectionResponse is the JSON body returned by /api/projection.
type ProjectionResponse struct {
	RunID  string                   `json:"run_id"`
	Query  string                   `json:"query"`
	Seed   int64                    `json:"seed"`
	Report *domain.ProjectionReport `json:"report"`
}

// handleProjection decodes and clamps the query, builds the table and returns it.
// The request context bounds the run, so a client disconnect cancels it.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)

	q := r.URL.Query()
	params, err := config.DecodeQuery(q)
	if err != nil {
		s.metrics.observe(outcomeInvalid, 0, 0)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params = config.ClampToInputRanges(params)
	if err := params.Validate(); err != nil {
		s.metrics.observe(outcomeInvalid, 0, 0)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var formatter output.Formatter
	if name := q.Get(formatKey); name != "" {
		formatter, err = output.ResolveFormatter(name)
		if err != nil {
			s.metrics.observe(outcomeInvalid, 0, 0)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	builder := calculation.NewProjectionBuilder(s.config.Seed, s.config.Workers)
	builder.SetLogger(calculation.NewSlogLogger(log))
	horizons := s.config.Horizons()

	start := s.now()
	table, err := builder.Build(r.Context(), params, horizons)
	elapsed := s.now().Sub(start)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.metrics.observe(outcomeCanceled, elapsed, 0)
			log.Warn("Projection canceled", "error", err)
			writeError(w, http.StatusServiceUnavailable, "projection canceled")
		case errors.Is(err, domain.ErrInvalidParameter):
			s.metrics.observe(outcomeInvalid, elapsed, 0)
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.metrics.observe(outcomeError, elapsed, 0)
			log.Error("Projection failed", "error", err)
			writeError(w, http.StatusInternalServerError, "projection failed")
		}
		return
	}
	s.metrics.observe(outcomeOK, elapsed, params.NumPaths*len(table.Rows[1:]))
	log.Info("Projection built", "paths", params.NumPaths, "horizons", len(table.Rows)-1, "elapsed", elapsed)

	report := &domain.ProjectionReport{
		Table:        table,
		BaselineYear: config.EffectiveBaselineYear(&s.config),
		GeneratedAt:  s.now(),
	}

	if formatter != nil && formatter.Name() != "json" {
		data, err := formatter.Format(report)
		if err != nil {
			log.Error("Format failed", "format", formatter.Name(), "error", err)
			writeError(w, http.StatusInternalServerError, "format failed")
			return
		}
		w.Header().Set("Content-Type", contentType(formatter))
		w.Header().Set("X-Run-Id", runID)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, ProjectionResponse{
		RunID:  runID,
		Query:  config.EncodeQuery(params).Encode(),
		Seed:   builder.Aggregator.Seed,
		Report: report,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func contentType(f output.Formatter) string {
	switch f.Extension() {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// writeJSON encodes v before sending any header so an encoding failure can
// still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

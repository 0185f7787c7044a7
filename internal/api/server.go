// Package api exposes the HTTP interface for the insights service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storelens/storefront-insights/internal/config"
	"github.com/storelens/storefront-insights/internal/insight"
	"github.com/storelens/storefront-insights/internal/metrics"
)

// Server wires HTTP handlers to the extraction pipeline and the store.
type Server struct {
	router    chi.Router
	assembler *insight.Assembler
	batch     *insight.BatchRunner
	store     insight.Store
	cfg       config.Config
	logger    *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	assembler *insight.Assembler,
	batch *insight.BatchRunner,
	store insight.Store,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.Init()
	s := &Server{
		assembler: assembler,
		batch:     batch,
		store:     store,
		cfg:       cfg,
		logger:    logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/", s.root)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/fetch", s.fetchInsights)
	r.Post("/competitors", s.competitorAnalysis)
	r.Get("/history/insights", s.insightsHistory)
	r.Get("/history/competitors", s.competitorsHistory)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Storefront Insights API running",
	})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) fetchInsights(w http.ResponseWriter, r *http.Request) {
	websiteURL := r.URL.Query().Get("website_url")
	if websiteURL == "" {
		writeError(w, http.StatusBadRequest, "website_url query parameter is required")
		return
	}

	start := time.Now()
	record, err := s.assembler.Scrape(r.Context(), websiteURL)
	if err != nil {
		metrics.ObserveScrape(websiteURL, "error", time.Since(start))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ObserveScrape(websiteURL, "ok", time.Since(start))

	// Persistence is best effort: the extraction succeeded and the record
	// goes back to the caller even if the durability step fails.
	if payload, err := json.Marshal(record); err == nil {
		if err := s.store.SaveInsight(r.Context(), record.StoreURL, payload); err != nil {
			metrics.ObservePersistFailure("insight")
			s.logger.Error("insight save failed",
				zap.String("store_url", record.StoreURL),
				zap.Error(err),
			)
		}
	}

	writeJSON(w, http.StatusOK, record)
}

type competitorRequest struct {
	BrandURL       string   `json:"brand_url"`
	CompetitorURLs []string `json:"competitor_urls"`
}

func (s *Server) competitorAnalysis(w http.ResponseWriter, r *http.Request) {
	var req competitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.BrandURL == "" {
		writeError(w, http.StatusBadRequest, "brand_url is required")
		return
	}

	result := s.batch.Run(r.Context(), req.BrandURL, req.CompetitorURLs)

	for _, slot := range result.Competitors {
		if slot.Record == nil {
			continue
		}
		payload, err := json.Marshal(slot.Record)
		if err != nil {
			continue
		}
		if err := s.store.SaveCompetitor(r.Context(), req.BrandURL, slot.Record.StoreURL, payload); err != nil {
			metrics.ObservePersistFailure("competitor")
			s.logger.Error("competitor save failed",
				zap.String("brand_url", req.BrandURL),
				zap.String("competitor_url", slot.Record.StoreURL),
				zap.Error(err),
			)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) insightsHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListRecentInsights(r.Context(), s.cfg.History.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) competitorsHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListRecentCompetitors(r.Context(), s.cfg.History.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("panic", rec))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

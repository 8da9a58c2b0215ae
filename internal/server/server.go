// Package server provides the HTTP API for rewriting resume text and extracting highlights.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/rewriting"
	"github.com/jonathan/resume-rewriter/internal/server/middleware"
	"github.com/jonathan/resume-rewriter/internal/server/ratelimit"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	orchestrator *rewriting.Orchestrator
	settings     config.SettingsProvider
	rateLimiter  *ratelimit.Limiter
	logger       *slog.Logger
	concurrency  int
}

// Config holds server configuration
type Config struct {
	Port        int
	RateLimit   config.RateLimit
	Concurrency int // Parallel generation calls per batch request
}

// New creates a new server. Generation settings are read from settings on every request so a
// flag or credential change takes effect without a restart.
func New(cfg Config, orchestrator *rewriting.Orchestrator, settings config.SettingsProvider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		orchestrator: orchestrator,
		settings:     settings,
		rateLimiter:  ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit)),
		logger:       logger,
		concurrency:  cfg.Concurrency,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Batches wait on several generation calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/rewrite/{content_type}", s.handleRewrite)
	mux.HandleFunc("POST /v1/rewrite-structured", s.handleRewriteStructured)
	mux.HandleFunc("POST /v1/rewrite-batch", s.handleRewriteBatch)
	mux.HandleFunc("POST /v1/highlights", s.handleHighlights)
	mux.HandleFunc("GET /health", s.handleHealth)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	})

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = corsHandler(h)
	h = chimw.Recoverer(h)
	h = middleware.RequestLogger(s.logger)(h)
	h = s.withRequestIDHeader(h)
	h = chimw.RequestID(h)
	h = chimw.RealIP(h)
	return h
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withRequestIDHeader echoes the request ID so clients can correlate logs.
func (s *Server) withRequestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.RequestID(r); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their token budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	generation := "disabled"
	if settings := s.settings.GenerationSettings(); settings.Enabled {
		generation = "enabled"
		if !settings.HasCredential() {
			generation = "missing_credential"
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "generation": generation})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response with the status mapped from err.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.jsonResponse(w, HTTPStatus(err), map[string]string{
		"error":      err.Error(),
		"request_id": middleware.RequestID(r),
	})
}

// extractClientID returns the client IP. RealIP has already applied X-Forwarded-For.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":      "rate_limit_exceeded",
		"message":    "Rate limit exceeded. Please try again later.",
		"limit":      info.Limit,
		"remaining":  info.Remaining,
		"request_id": middleware.RequestID(r),
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds())
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded", "client", s.extractClientID(r), "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

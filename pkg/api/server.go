// Package api serves the container operations over HTTP.
//
// Every route under /api/v1 requires an X-API-Key header. Request bodies
// carry raw container bytes; responses use the APIResponse JSON envelope.
// Prometheus metrics are exposed unauthenticated at /metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ssargent/pngstash/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP routes for s. gatherer backs the /metrics endpoint.
func NewRouter(s *Server, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		auth := apiKeyMiddleware(s.config.APIKey)
		if s.metrics != nil {
			auth = s.metrics.InstrumentAuthMiddleware(auth)
		}
		r.Use(auth)

		r.Get("/health", s.instrument("GET", "/api/v1/health", s.handleHealth))

		r.Post("/encode", s.instrument("POST", "/api/v1/encode", s.handleEncode))
		r.Post("/decode", s.instrument("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/remove", s.instrument("POST", "/api/v1/remove", s.handleRemove))
		r.Post("/chunks", s.instrument("POST", "/api/v1/chunks", s.handleChunks))

		r.Get("/journal", s.instrument("GET", "/api/v1/journal", s.handleJournal))
	})

	return r
}

func (s *Server) instrument(method, endpoint string, h http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return h
	}
	return s.metrics.InstrumentHandler(method, endpoint, h)
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors, for use with NewMetrics and NewRouter.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// StartServer serves handler on the configured address until ctx is
// cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, handler http.Handler, config ServerConfig) error {
	addr := net.JoinHostPort(config.Bind, fmt.Sprintf("%d", config.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("starting pngstash API server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logging.Logger().Info("shutting down pngstash API server", zap.String("addr", addr))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}

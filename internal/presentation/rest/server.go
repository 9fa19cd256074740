package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/farmcred/scoring/pkg/auth"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server serves probes, metrics and the JSON API.
type Server struct {
	httpServer *http.Server
	limiter    *RateLimiter
	logger     *slog.Logger
}

// NewServer wires the routes. Probes and metrics are unauthenticated and not
// rate limited; API routes require a bearer token. metrics may be nil.
func NewServer(cfg ServerConfig, health *HealthHandler, scoring *ScoringHandler, metrics http.Handler, jwtService *auth.JWTService, logger *slog.Logger) *Server {
	api := http.NewServeMux()
	scoring.RegisterRoutes(api)

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	mux.Handle("/v1/", chain(api,
		RateLimitMiddleware(limiter),
		func(next http.Handler) http.Handler { return auth.HTTPMiddleware(jwtService, next) },
	))

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           LoggingMiddleware(logger)(mux),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("HTTP server starting", slog.String("address", listener.Addr().String()))
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}

// SweepLimiter periodically forgets idle rate-limit buckets until ctx ends.
func (s *Server) SweepLimiter(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Sweep(every)
		}
	}
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server stopping")
	return s.httpServer.Shutdown(ctx)
}

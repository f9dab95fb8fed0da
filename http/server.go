// Package http serves the prediction API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"strokerisk/inference"
	"strokerisk/ml"
)

// Predictor is the request pipeline the handlers delegate to.
type Predictor interface {
	Authorize(header string) error
	Predict(payload inference.Payload) (inference.Result, error)
	Spec() ml.FeatureSpec
	ModelType() string
}

// Server HTTP server
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig server settings
type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	IdleTimeout    time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string
}

// DefaultServerConfig default server settings
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           5000,
		ReadTimeout:    30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxBodyBytes:   1 << 20,
		AllowedOrigins: []string{"*"},
		MetricsPath:    "/metrics",
	}
}

// NewServer wires routes and middleware. Requests are never cut short by a
// write deadline; a prediction runs to completion once its body is read.
func NewServer(config ServerConfig, predictor Predictor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	mux := http.NewServeMux()
	RegisterHandlers(mux, predictor, metrics, logger)
	if config.MetricsPath != "" {
		RegisterMetrics(mux, config.MetricsPath, registry)
	}

	chain := Chain(
		RecoveryMiddleware(logger),                 // 1. recover panics first
		RequestIDMiddleware,                        // 2. request id
		LoggerMiddleware(logger),                   // 3. access log
		SecurityHeadersMiddleware,                  // 4. security headers
		CORSMiddleware(config.AllowedOrigins),      // 5. CORS
		RequestSizeMiddleware(config.MaxBodyBytes), // 6. body size limit
		metrics.Middleware,                         // 7. innermost, so the mux has set the route pattern
	)

	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           chain(mux),
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		config: config,
		logger: logger,
	}
}

// Start blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests for up to 5 seconds.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

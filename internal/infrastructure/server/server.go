package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/horoscopefs/internal/api/http"
	"github.com/GriffinCanCode/horoscopefs/internal/api/middleware"
	"github.com/GriffinCanCode/horoscopefs/internal/filesystem/registry"
	"github.com/GriffinCanCode/horoscopefs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/horoscopefs/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Config holds the dependencies of the status server
type Config struct {
	Addr        string
	Development bool
	Session     handlers.Session
	Registry    *registry.Registry
	Breakers    handlers.BreakerStates
	Metrics     *monitoring.Metrics
	Logger      *logging.Logger
}

// Server exposes metrics and session status over HTTP
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *logging.Logger
}

// New creates a status server. It does not listen until Run is called.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("status server address is required")
	}
	if cfg.Registry == nil || cfg.Metrics == nil {
		return nil, fmt.Errorf("status server needs a registry and metrics")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(cfg.Metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	h := handlers.NewHandlers(cfg.Session, cfg.Registry, cfg.Breakers, cfg.Metrics)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/sources", h.ListSources)
	router.GET("/sources/:source", h.GetSource)
	router.GET("/breakers", h.ListBreakers)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	router.GET("/metrics/json", h.MetricsSnapshot)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: cfg.Logger,
	}, nil
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("Starting status server", zap.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down status server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down status server: %w", err)
	}
	return nil
}

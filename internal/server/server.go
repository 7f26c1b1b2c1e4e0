// Package server owns the HTTP listener and the background workers started
// by bootstrap, and stops them in order on SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/facultyhub/internal/bootstrap"
	"github.com/yigit/facultyhub/internal/config"
)

type Server struct {
	config *config.Config
	logger zerolog.Logger
	http   *http.Server
	// stop ends the notification hub and the websocket message handler
	stop context.CancelFunc
}

// NewServer loads the config, opens the data directory and wires every
// dependency. Nothing listens until Run is called.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(context.Background())

	db, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to setup data store: %w", err)
	}
	deps, err := bootstrap.BuildDependencies(ctx, cfg, db, lgr)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return newServer(cfg, bootstrap.SetupRouter(cfg, deps, lgr), lgr, stop), nil
}

func newServer(cfg *config.Config, router *gin.Engine, lgr zerolog.Logger, stop context.CancelFunc) *Server {
	return &Server{
		config: cfg,
		logger: lgr,
		stop:   stop,
		http: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Run serves until the process is signalled, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return s.serve(ctx)
}

// serve blocks until ctx is done or the listener fails.
func (s *Server) serve(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.stop()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}
	return s.Shutdown(context.Background())
}

// Shutdown lets in-flight requests finish, then stops the hub so open
// websockets are closed last.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout())
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.stop()
	if err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		return fmt.Errorf("server shutdown completed with errors: %w", err)
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}

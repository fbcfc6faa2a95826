// Package httptransport wraps the HTTP server lifecycle.
package httptransport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServerConfig contains tunables for the HTTP server.
type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server runs an http.Server and shuts it down cleanly when the parent
// context is cancelled.
type Server struct {
	srv             *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// NewServer builds a Server with the provided handler.
func NewServer(cfg ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("listening", zap.String("address", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

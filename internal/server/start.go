package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts down the modules and the server.
func (s *Server) Start() {
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.ServerAddr)
		if err := s.E.Start(s.Cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
}

// Shutdown stops the modules in reverse boot order, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(s.Modules) - 1; i >= 0; i-- {
		if err := s.Modules[i].Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", s.Modules[i].Name(), "error", err)
			errs = append(errs, err)
		}
	}
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

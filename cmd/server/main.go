package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/postwall/internal/config"
	"github.com/nfrund/postwall/internal/logging"
	"github.com/nfrund/postwall/internal/server"
)

func main() {
	logging.New() // Initialize the structured logger
	cfg := config.New()

	s, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.RegisterRoutes(context.Background()); err != nil {
		slog.Error("Failed to register routes", "error", err)
		os.Exit(1)
	}

	s.Start()
}

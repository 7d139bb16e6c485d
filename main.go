package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tubebrief/internal/app"
	"tubebrief/internal/config"
	"tubebrief/internal/logger"
)

func main() {
	// Initialize structured logger
	baseHandler := slog.NewJSONHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(logger.NewContextHandler(baseHandler)))

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Bootstrap infrastructure: database, migrations, embedding client
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("failed to bootstrap dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.DB.Close()
	defer deps.Embedder.Close()

	// 3. Wire the application
	application, err := app.New(cfg, deps.DB, deps.Embedder)
	if err != nil {
		slog.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// 4. Serve
	if err := application.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wkddns40/week-3/internal/config"
	"github.com/wkddns40/week-3/internal/server"
)

func main() {
	cfg, err := config.Load(":8080")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := server.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

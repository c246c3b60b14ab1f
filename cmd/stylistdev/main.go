// Command stylistdev runs the API for local front-end development. It reads
// .env and starts without an API key; consultations then fail with a 500.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/wkddns40/week-3/internal/config"
	"github.com/wkddns40/week-3/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not loaded", "error", err)
	}

	cfg, err := config.Load(":9002")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := server.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.RequireAPIKey(); err != nil {
		logger.Warn("OPENAI_API_KEY is not set, consultations will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

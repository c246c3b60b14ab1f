package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wkddns40/week-3/internal/adapters/events"
	httpadapter "github.com/wkddns40/week-3/internal/adapters/http"
	"github.com/wkddns40/week-3/internal/adapters/llm/openai"
	"github.com/wkddns40/week-3/internal/app"
	"github.com/wkddns40/week-3/internal/config"
)

const shutdownTimeout = 10 * time.Second

// New wires the consultation service into an echo instance.
func New(cfg config.Config, logger *slog.Logger) (*echo.Echo, error) {
	provider := openai.NewClient(
		&http.Client{Timeout: cfg.UpstreamTimeout},
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		openai.Settings{
			PromptID:      cfg.ReportPromptID,
			PromptVersion: cfg.ReportPromptVersion,
			ImageModel:    cfg.ImageModel,
			ImageSize:     cfg.ImageSize,
		},
		logger,
	)

	notifier, err := events.NewNotifier(cfg.EventSinkURL, cfg.EventSource, cfg.EventType, logger)
	if err != nil {
		return nil, fmt.Errorf("create notifier: %w", err)
	}

	svc := app.NewConsultService(provider, notifier, logger)

	return httpadapter.NewServer(httpadapter.NewHandler(svc), logger, httpadapter.ServerOptions{
		StaticDir:   cfg.StaticDir,
		MaxBodySize: cfg.MaxBodySize,
	}), nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	e, err := New(cfg, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "static_dir", cfg.StaticDir)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// NewLogger returns the JSON logger used by every binding.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

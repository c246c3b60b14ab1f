package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerOptions is the routing glue that differs between deployments.
type ServerOptions struct {
	StaticDir   string
	MaxBodySize string
}

// NewServer builds the echo instance shared by every binding.
func NewServer(h *Handler, logger *slog.Logger, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(logger))
	e.Use(middleware.Recover())
	if opts.MaxBodySize != "" {
		e.Use(middleware.BodyLimit(opts.MaxBodySize))
	}
	if opts.StaticDir != "" {
		e.Use(StaticAssets(opts.StaticDir))
	}

	h.Register(e)
	return e
}

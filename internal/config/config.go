package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

type Config struct {
	HTTPAddr            string
	LogLevel            slog.Level
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	ReportPromptID      string
	ReportPromptVersion string
	ImageModel          string
	ImageSize           string
	UpstreamTimeout     time.Duration
	StaticDir           string
	MaxBodySize         string
	EventSinkURL        string
	EventSource         string
	EventType           string
}

// Load reads the environment. defaultAddr is used when HTTP_ADDR is unset.
// The API key is not validated here; see RequireAPIKey.
func Load(defaultAddr string) (Config, error) {
	c := Config{
		HTTPAddr:            envOr("HTTP_ADDR", defaultAddr),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ReportPromptID:      envOr("REPORT_PROMPT_ID", "pmpt_69746eac15448194bb554248a6918b2202f145b5e23338b6"),
		ReportPromptVersion: envOr("REPORT_PROMPT_VERSION", "3"),
		ImageModel:          envOr("IMAGE_MODEL", "gpt-image-1"),
		ImageSize:           envOr("IMAGE_SIZE", "1024x1024"),
		StaticDir:           os.Getenv("STATIC_DIR"),
		MaxBodySize:         envOr("MAX_BODY_SIZE", "20M"),
		EventSinkURL:        os.Getenv("K_SINK"),
		EventSource:         envOr("EVENT_SOURCE", "stylist/consult"),
		EventType:           envOr("EVENT_TYPE", "stylist.consultation.completed"),
	}

	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: must not be negative", v)
		}
		c.UpstreamTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

// RequireAPIKey fails when OPENAI_API_KEY is empty.
func (c Config) RequireAPIKey() error {
	if c.OpenAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

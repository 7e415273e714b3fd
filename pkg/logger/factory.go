package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// Config holds logger configuration loaded from the environment.
type Config struct {
	Level  string       `env:"LOG_LEVEL" envDefault:"info"`
	Format string       `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig `envPrefix:""`
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewFromConfig(Config{Level: "info", Format: FormatJSON}, extractors...)
}

// NewFromConfig builds a logger from cfg. The console format uses colored,
// human-readable output for local development. When a Sentry DSN is set,
// warnings and errors are forwarded to Sentry as well.
func NewFromConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(os.Stdout, cfg), extractors...))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	level := ParseLevel(cfg.Level)

	var base slog.Handler
	switch strings.ToLower(cfg.Format) {
	case FormatConsole:
		base = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	case FormatText:
		base = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	if cfg.Sentry.DSN == "" {
		return base
	}
	sentryHandler, err := newSentryHandler(cfg.Sentry)
	if err != nil {
		// Graceful degradation: keep logging locally if Sentry init fails
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return base
	}
	return newMultiHandler(base, sentryHandler)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values yield slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

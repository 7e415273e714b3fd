// Package logger builds structured slog loggers for the translations engine and server.
//
// It adds two things on top of log/slog: context extraction, so request-scoped
// values such as the request id or the negotiated locale land on every record,
// and optional Sentry reporting for warnings and errors.
//
// # Basic Usage
//
//	log := logger.NewFromConfig(logger.Config{Level: "debug", Format: logger.FormatConsole},
//		logger.ContextAttrs,
//	)
//
//	ctx = logger.WithAttrs(ctx, slog.String("request_id", id))
//	log.InfoContext(ctx, "namespace served", slog.String("namespace", "common"))
//	// {"level":"INFO","msg":"namespace served","namespace":"common","request_id":"..."}
//
// Formats are "json" (default), "text" and "console". The console format uses
// github.com/lmittmann/tint for colored output during development.
//
// # Sentry Integration
//
// When Config.Sentry.DSN is set, records at the configured level and above are
// also sent to Sentry. If the DSN is empty or Sentry fails to initialize,
// logging continues locally.
//
// # Tests
//
// NewNope discards everything. NewWriter writes JSON to any io.Writer so tests
// can assert on what was logged.
package logger

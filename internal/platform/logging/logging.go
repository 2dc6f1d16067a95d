package logging

import (
	"io"
	"log/slog"

	"perftrack/internal/platform/config"
)

// New returns a JSON logger in production and a text logger elsewhere.
func New(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "perftrack")
}

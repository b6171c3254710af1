package logger

import (
	"io"
	"log/slog"
	"os"
)

// Service is attached to every record.
const Service = "mini-linkedin"

func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter logs JSON at info level in prod and text at debug level
// elsewhere. Every record carries the service name and environment.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	var h slog.Handler
	switch env {
	case "prod":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h).With("service", Service, "env", env)
}

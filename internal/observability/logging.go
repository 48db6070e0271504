// Package observability builds loggers and carries per-export log context.
package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/wikiexport/internal/logfields"
)

// NewLogger builds a slog logger for the given level ("debug", "info", "warn",
// "error") and format ("text" or "json"). Unknown values fall back to info/text.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// LogContext holds the fields attached to every log line of one export run.
type LogContext struct {
	ExportID string
	Stage    string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithExportID tags ctx with a fresh export id and returns it.
func WithExportID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	lc := GetContext(ctx)
	lc.ExportID = id
	return context.WithValue(ctx, logContextKey, lc), id
}

// WithStage records the current export stage in ctx.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := GetContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the log context stored in ctx, or the zero value.
func GetContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// Logger returns base enriched with the export id and stage from ctx.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	lc := GetContext(ctx)
	var args []any
	if lc.ExportID != "" {
		args = append(args, logfields.ExportID(lc.ExportID))
	}
	if lc.Stage != "" {
		args = append(args, logfields.Stage(lc.Stage))
	}
	if len(args) == 0 {
		return base
	}
	return base.With(args...)
}

// Package ctxlog threads a *slog.Logger through context.Context so every
// layer of the analysis can log without carrying a logger parameter.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported so no other package can collide with our context entry.
type key struct{}

var loggerKey = key{}

// WithLogger attaches logger to ctx for retrieval by FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, falling back to
// slog.Default() when the context carries none. Callers therefore never
// need a nil check before logging.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

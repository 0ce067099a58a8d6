package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for the request-scoped logger.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying the logger. The HTTP
// middleware uses this to hand each request a logger pre-tagged with its
// request id.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx. Code paths reached outside a
// request, such as the seeder, get a no-op logger rather than a nil one.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

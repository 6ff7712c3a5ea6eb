package logging

import (
	"context"
)

type contextKey struct{}

// WithLogData attaches a LogData collector to the context so handlers can
// record timings and fields for the request-scoped log entry.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the collector attached to the context, or nil when the
// request was not wrapped.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(contextKey{}).(*LogData)
	return logData
}

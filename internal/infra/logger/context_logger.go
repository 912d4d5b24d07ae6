package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	// Request-scoped keys stitched into every log line emitted while handling
	// one recommendation call.
	RequestIDKey ContextKey = "reelguard.request.id"
	SessionIDKey ContextKey = "reelguard.session.id"
)

// ContextLogger provides context-aware logging for the guardrail pipeline.
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewContextLogger creates a new context-aware logger.
func NewContextLogger(serviceName string) *ContextLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &ContextLogger{
		logger:      slog.New(handler),
		serviceName: serviceName,
	}
}

// WithContext returns a logger with request-scoped values added as fields.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if sessionID := ctx.Value(SessionIDKey); sessionID != nil {
		fields = append(fields, string(SessionIDKey), sessionID)
	}
	if len(fields) > 0 {
		logger = logger.With(fields...)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package log

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// WithLogger stores a logger in the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// NewOperationID creates a unique operation ID for tracing
func NewOperationID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("op_%d", time.Now().UnixNano())
	}
	return "op_" + hex.EncodeToString(bytes)
}

// StartOperation tags the logger with the operation name and a fresh
// operation ID, stores it in the context, and returns both. Each menu
// action and worker message runs under its own operation.
func StartOperation(ctx context.Context, logger *Logger, op string) (context.Context, *Logger) {
	opLogger := logger.With(FieldOperation, op, FieldOperationID, NewOperationID())
	return WithLogger(ctx, opLogger), opLogger
}

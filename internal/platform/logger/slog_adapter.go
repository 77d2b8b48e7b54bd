package logger

import (
	"context"
	"io"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// SlogAdapter implements the Logger interface using Go's standard slog library.
type SlogAdapter struct {
	logger *slog.Logger
}

func newSlogAdapter(w io.Writer, env string, level string) *SlogAdapter {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if env == "development" {
		// Use a more human-readable text handler for development.
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &SlogAdapter{
		logger: slog.New(handler),
	}
}

// ParseLevel maps a configured level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a message at debug level
func (s *SlogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	s.logger.DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

// Info logs a message at info level
func (s *SlogAdapter) Info(ctx context.Context, msg string, args ...any) {
	s.logger.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

// Warn logs a message at warn level
func (s *SlogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	s.logger.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

// Error logs a message at error level
func (s *SlogAdapter) Error(ctx context.Context, msg string, args ...any) {
	s.logger.ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}

// withRequestID prepends the chi request id, when the context carries one.
func withRequestID(ctx context.Context, args []any) []any {
	if ctx == nil {
		return args
	}
	reqID := chimw.GetReqID(ctx)
	if reqID == "" {
		return args
	}
	return append([]any{"request_id", reqID}, args...)
}

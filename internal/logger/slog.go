package logger

import (
	"context"
	"log/slog"
	"os"
)

// slogLogger implements Logger using Go's standard library slog
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a new Logger backed by slog
func NewSlogLogger(cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &slogLogger{logger: slog.New(handler)}
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fieldsToAttrs converts our Field slice to slog's alternating key/value form
func fieldsToAttrs(fields []Field) []any {
	attrs := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		attrs = append(attrs, f.Key, f.Value)
	}
	return attrs
}

func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, fieldsToAttrs(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, fieldsToAttrs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, fieldsToAttrs(fields)...)
}

func (l *slogLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, fieldsToAttrs(fields)...)
}

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{logger: l.logger.With(fieldsToAttrs(fields)...)}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

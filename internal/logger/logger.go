// Package logger provides a small structured logging facade over slog so the
// backend can attach request and user identifiers without threading loggers
// through every call site.
package logger

import (
	"context"
	"time"
)

// Level represents log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a string to a Level
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is implemented by logging backends. slog is the only backend today;
// the indirection keeps handlers and services off a concrete logger type.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a new Logger with the given fields added to all log entries
	With(fields ...Field) Logger
	// WithContext returns a new Logger carrying request_id/user_id from ctx
	WithContext(ctx context.Context) Logger
}

// Config holds logging configuration
type Config struct {
	Level  Level
	Format string // "json" or "text"
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Format: "json"}
}

var defaultLogger Logger

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the default global logger
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

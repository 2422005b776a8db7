// Package logger wraps log/slog with the configuration knobs the services share.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerInterface defines the interface for logging operations
type LoggerInterface interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	DebugContext(ctx context.Context, msg string, args ...any)
	// With returns a logger that adds args to every record
	With(args ...any) LoggerInterface
	// Enabled reports whether records at level would be written
	Enabled(ctx context.Context, level slog.Level) bool
}

// Logger wraps slog.Logger
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level     slog.Level
	Output    io.Writer
	Format    string // "json" or "text"
	AddSource bool
	// Service is attached to every record when set
	Service string
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Output: os.Stdout,
		Format: "json",
	}
}

// New creates a new logger instance with the given configuration
func New(config Config) LoggerInterface {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	l := slog.New(handler)
	if config.Service != "" {
		l = l.With("service", config.Service)
	}
	return &Logger{Logger: l}
}

// NewWithOptions creates a new logger with options
func NewWithOptions(opts ...Option) LoggerInterface {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return New(config)
}

// NewJSONDefault creates a new JSON logger with default settings
func NewJSONDefault() LoggerInterface {
	return New(DefaultConfig())
}

// ParseLevel maps a config string to a slog level. Unknown values fall back to info.
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

// With returns a logger that adds args to every record
func (l *Logger) With(args ...any) LoggerInterface {
	return &Logger{Logger: l.Logger.With(args...)}
}

// InfoContext logs at the info level with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelInfo, msg, args...)
}

// ErrorContext logs at the error level with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelError, msg, args...)
}

// WarnContext logs at the warn level with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelWarn, msg, args...)
}

// DebugContext logs at the debug level with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, slog.LevelDebug, msg, args...)
}

// NoOpLogger returns a logger that does nothing - useful for testing
func NoOpLogger() LoggerInterface {
	return &Logger{
		Logger: slog.New(noOpHandler{}),
	}
}

type noOpHandler struct{}

func (h noOpHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h noOpHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h noOpHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h noOpHandler) WithGroup(_ string) slog.Handler {
	return h
}

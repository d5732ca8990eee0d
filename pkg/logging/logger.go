// Package logging provides the process-wide structured logger for relcore.
//
// It wraps [log/slog] behind a single global instance so log level and
// format are controlled from one place. Call Init once at startup; packages
// that log before that get a lazily created default logger via GetLogger.
//
// The WithQuery and WithTable helpers return child loggers carrying the
// query_id or table field, so pipeline code does not repeat them per call.
package logging

import (
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents logging verbosity.
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Config holds logger configuration.
type Config struct {
	Level  LogLevel
	Format string // "json" or "text"
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Init configures the global logger, replacing any earlier configuration.
// Unknown levels fall back to INFO, unknown formats to text.
func Init(config Config) error {
	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	mu.Lock()
	logger = slog.New(handler)
	mu.Unlock()
	return nil
}

// InitDefault installs an INFO-level text logger on stdout if no logger has
// been configured yet. Safe to call any number of times.
func InitDefault() {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}

// GetLogger returns the current logger, creating the default lazily when
// Init has not run.
func GetLogger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	InitDefault()

	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Info logs an info message on the global logger.
func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

// Error logs an error message on the global logger.
func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// WithQuery returns a logger carrying the query ID, for correlating all
// log lines of one execution.
func WithQuery(queryID string) *slog.Logger {
	return GetLogger().With("query_id", queryID)
}

// WithTable returns a logger carrying the table name.
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

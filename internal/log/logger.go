// Package log wraps slog with a per-component logger shared by every binary.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Logger carries its component name as a permanent attribute. All level
// methods come from the embedded slog.Logger.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// DefaultConfig reads LOG_LEVEL (debug|info|warn|error) and LOG_FORMAT
// (text|json) from the environment, defaulting to info-level text.
func DefaultConfig() Config {
	return Config{
		Level:     parseLevel(os.Getenv("LOG_LEVEL")),
		Component: "app",
	}
}

// New builds a logger. A nil Handler in the config means a handler on
// stdout chosen by LOG_FORMAT.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		opts := &slog.HandlerOptions{Level: config.Level}
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
	}

	component := config.Component
	if component == "" {
		component = "app"
	}
	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, component),
		component: component,
	}
}

// With returns a logger with extra permanent attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// WithComponent returns a logger for a sub-component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string { return l.component }

// SetDefault routes package-level slog calls through this logger.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

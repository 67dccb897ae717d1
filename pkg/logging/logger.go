// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// zerologLevels maps the levels ParseLevel accepts onto zerolog.
var zerologLevels = map[LogLevel]zerolog.Level{
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

// Setup configures the global zerolog logger. An unknown cfg.Level is rejected.
func Setup(cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(string(cfg.Level))
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(zerologLevels[level])

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, NoColor: true}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger, nil
}

// ParseLevel validates a configured level name. Empty means info.
func ParseLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key)
//   - Warm-up worker progress
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Completed warm-up runs
//   - Access log lines for 2xx/3xx responses
//
// Warn: Warning conditions that don't prevent operation
//   - Upstream retry attempts
//   - Cache errors (fallback to upstream fetch)
//   - Access log lines for 4xx responses
//
// Error: Error conditions requiring attention
//   - Upstream failures after retries
//   - Access log lines for 5xx responses
//   - Configuration errors
//
// Context Fields:
//   - component: Emitting package (placeholder-api, upstream-client, http)
//   - request_id: X-Request-ID of the inbound request
//   - endpoint: Upstream path with ids collapsed to :id
//   - status: HTTP status code
//   - attempt: Upstream attempt number (1-based)
//   - duration: Request duration
//   - key: Cache key

// Package logging builds the hclog loggers used across erlc.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel selects the log level when no flag or config sets one
	EnvLogLevel = "ERLC_LOG_LEVEL"
	// EnvJSONLog switches to JSON output when set to "1"
	EnvJSONLog = "ERLC_JSON_LOG"

	linePrefix = "🧮 "
)

// Options tune NewLoggerWithOptions.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// NewLogger creates a new hclog logger with standard settings. JSON output
// is taken from the environment.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithOptions(name, Options{
		Level:  level,
		JSON:   os.Getenv(EnvJSONLog) == "1",
		Output: output,
	})
}

// NewOutput wraps w in the standard line prefix. Loggers built on it share
// the writer; Flush it before exit.
func NewOutput(w io.Writer) *PrefixWriter {
	return NewPrefixWriter(linePrefix, w)
}

// NewLoggerWithOptions creates a logger from explicit options.
func NewLoggerWithOptions(name string, opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	// Add prefix for non-JSON output
	pw, prefixed := output.(*PrefixWriter)
	switch {
	case opts.JSON && prefixed:
		output = pw.writer
	case !opts.JSON && !prefixed:
		output = NewPrefixWriter(linePrefix, output)
	}

	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		level = hclog.Warn
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		JSONFormat: opts.JSON,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = "warn" // quiet unless asked
	}
	return level
}

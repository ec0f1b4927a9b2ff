// Package logging configures the diagnostic logger shared by do packages.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelEnvVar selects the log level (debug, info, warn, error).
const LevelEnvVar = "DO_LOG_LEVEL"

// DefaultLevel is used when LevelEnvVar is unset or invalid.
const DefaultLevel = log.WarnLevel

// New creates a logger writing to w at the level named by DO_LOG_LEVEL.
func New(w io.Writer) *log.Logger {
	return NewWithLevel(w, LevelFromEnv())
}

// NewWithLevel creates a logger writing to w at the given level.
func NewWithLevel(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "do",
		Level:  level,
	})
}

// LevelFromEnv parses DO_LOG_LEVEL, falling back to DefaultLevel.
func LevelFromEnv() log.Level {
	raw := strings.TrimSpace(os.Getenv(LevelEnvVar))
	if raw == "" {
		return DefaultLevel
	}
	level, err := log.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return DefaultLevel
	}
	return level
}

// Discard returns a logger that drops everything. Used by tests and as
// the zero value for components constructed without a logger.
func Discard() *log.Logger {
	return NewWithLevel(io.Discard, log.FatalLevel)
}

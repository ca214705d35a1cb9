// Package logging builds the charmbracelet/log loggers dapic writes its
// progress and warnings with. Diagnostics never go through these loggers.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide logger, replaced by --debug and log_level
var defaultLogger atomic.Pointer[log.Logger]

// Levels lists the level names accepted by log_level, least severe first.
func Levels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// New returns a logger at level writing to stderr.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger at level writing to w. Debug loggers
// also report timestamps so slow stages show up.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	lvl := ParseLevel(level)
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		Prefix:          "dapic",
	})
}

// NewInteractive returns a logger for commands that talk to a person
// directly, such as init. Messages have no prefix.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})
}

// ParseLevel converts a level name to a log.Level. "warning" is accepted
// for warn; anything unknown is info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil || lvl == log.FatalLevel {
		return log.InfoLevel
	}
	return lvl
}

// ValidLevel reports whether level is one of Levels, ignoring case.
func ValidLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range Levels() {
		if l == level {
			return true
		}
	}
	return false
}

// Default returns the process-wide logger, creating an info logger on
// first use.
func Default() *log.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

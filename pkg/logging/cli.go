package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewCLILogger creates a human readable logger writing to w. Colors are used
// only when w is a terminal.
func NewCLILogger(w io.Writer, level string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(out).
		Level(ParseLogLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSONLogger creates a structured logger for server use.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLogLevel(level)).
		With().
		Timestamp().
		Logger()
}

// SetDefaultCLILogger replaces the global logger with a CLI logger on stderr.
func SetDefaultCLILogger(level string) {
	log.Logger = NewCLILogger(os.Stderr, level)
}

// ParseLogLevel converts a string log level to zerolog.Level.
// Defaults to zerolog.InfoLevel for unrecognized strings.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

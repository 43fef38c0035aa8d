// Package logging builds the zerolog loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by NewWithFormat
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewWithFormat returns a JSON logger for FormatJSON and a console logger for
// FormatConsole or an empty format.
func NewWithFormat(format, level string, w io.Writer) (zerolog.Logger, error) {
	switch format {
	case FormatJSON:
		return NewJSON(level, w), nil
	case FormatConsole, "":
		return New(level, w), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q: use %s or %s", format, FormatConsole, FormatJSON)
	}
}

// ParseLevel parses level and falls back to info when it is not recognised
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// New returns a human-readable console logger writing to w at the given level.
// A nil w writes to stderr.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr,
	}

	return zerolog.New(consoleWriter).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSON returns a logger writing one JSON object per line to w.
// A nil w writes to stderr.
func NewJSON(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

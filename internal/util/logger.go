package util

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// LogLevel represents available log levels
type LogLevel = int

// Log levels
const (
	TraceLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// InitializeLogger sets up the global logger with the specified level.
// Logs go to out, or stderr when out is nil, so they never mix with
// shell output on stdout.
func InitializeLogger(level LogLevel, out io.Writer) {
	// Set time format to ISO8601
	zerolog.TimeFieldFormat = time.RFC3339

	zerolog.SetGlobalLevel(ZerologLevel(level))

	if out == nil {
		out = os.Stderr
	}
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	// Set global logger
	ctx := zerolog.New(output).With().Timestamp()
	if level == TraceLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	log.Debug().Msg("Logger initialized")
}

// ZerologLevel converts a LogLevel to its zerolog equivalent. Unknown
// values fall back to info.
func ZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case TraceLevel:
		return zerolog.TraceLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns a configured logger for a specific component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

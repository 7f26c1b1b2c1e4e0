// Package logger builds the zerolog root logger from the logging section of
// the config.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Format selects the encoding of log lines: json for production, text for a
// colored console.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Config struct {
	Level  LogLevel
	Format Format
	Output io.Writer // defaults to os.Stdout
}

// Level maps a configured level to zerolog. Unknown or empty values fall back
// to info.
func (l LogLevel) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(string(l))))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Configure sets the global level and returns the root logger. It also
// replaces the zerolog global logger so code logging through
// zerolog/log follows the same settings.
func Configure(config Config) zerolog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(string(config.Format), string(FormatText)) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(config.Level.Level())

	root := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = root
	return root
}

// Component tags a child logger with the subsystem it belongs to.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

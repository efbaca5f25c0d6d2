package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
	// With returns a child logger that adds key=value to every entry.
	With(key string, value string) Logger
}

type zeroLogger struct {
	logger zerolog.Logger
}

// New creates a logger writing JSON lines to stdout at the given level
// (debug, info, warn, error; anything else means info).
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) Logger {
	zl := zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "petagenda").
		Logger()
	return &zeroLogger{logger: zl}
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Error logs an error message. err may be nil.
func (l *zeroLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

func (l *zeroLogger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *zeroLogger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *zeroLogger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *zeroLogger) With(key string, value string) Logger {
	return &zeroLogger{logger: l.logger.With().Str(key, value).Logger()}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return &zeroLogger{logger: zerolog.Nop()}
}

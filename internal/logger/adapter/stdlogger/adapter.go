// Package stdlogger adapts the global zerolog logger to printf style logger interfaces
// such as gorm's logger.Writer.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	zl zerolog.Logger

	// level used by Printf.
	printLevel zerolog.Level
}

// New returns a Logger bound to the global logger. Printf logs at debug level.
func New() *Logger {
	return &Logger{zl: log.Logger, printLevel: zerolog.DebugLevel}
}

// WithPrintLevel returns a copy whose Printf logs at level.
func (l *Logger) WithPrintLevel(level zerolog.Level) *Logger {
	return &Logger{zl: l.zl, printLevel: level}
}

// Printf implements gorm.io/gorm/logger.Writer.
func (l *Logger) Printf(format string, args ...any) {
	l.zl.WithLevel(l.printLevel).Str("component", "gorm").Msgf(format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

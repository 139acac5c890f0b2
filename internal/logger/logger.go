// Package logger provides component-tagged structured logging.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging surface used by the pipeline and CLIs.
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerolog writes JSON lines to w at the given level.
func NewZerolog(w io.Writer, level zerolog.Level) *ZerologAdapter {
	l := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: l}
}

// NewConsole writes human-readable lines to stderr.
func NewConsole(level zerolog.Level) *ZerologAdapter {
	return NewZerolog(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}, level)
}

// ParseLevel maps "debug", "info", "warn", "error" to a zerolog level,
// defaulting to info.
func ParseLevel(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return l
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	z.emit(z.logger.Info(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	z.emit(z.logger.Warn(), component, fields).Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	z.emit(z.logger.Error(), component, fields).Err(err).Msg("operation failed")
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	z.emit(z.logger.Debug(), component, fields).Msg(message)
}

// emit attaches the component and fields. A disabled event is nil and all
// of its methods are no-ops.
func (z *ZerologAdapter) emit(e *zerolog.Event, component string, fields map[string]interface{}) *zerolog.Event {
	if !e.Enabled() {
		return e
	}
	e = e.Str("component", component)
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}

type nop struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

func (nop) Info(string, string, map[string]interface{})    {}
func (nop) Warning(string, string, map[string]interface{}) {}
func (nop) Error(string, error, map[string]interface{})    {}
func (nop) Debug(string, string, map[string]interface{})   {}

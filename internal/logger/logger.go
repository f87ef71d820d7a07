// Package logger defines the Logger interface used throughout package
// rcs and a zap-backed implementation of it.
package logger

import (
	"go.uber.org/zap"
)

// Logger is the diagnostic sink used by the parser; the emitter and
// the model mutators do not log. It is intentionally narrow: four
// severities, printf-style.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Discard is a no-op Logger, the default for Options.Logger.
var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}

type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l *zapLogger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l *zapLogger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l *zapLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

// NewZapLogger adapts a *zap.Logger to the Logger interface.
func NewZapLogger(z *zap.Logger) Logger {
	return &zapLogger{s: z.Sugar()}
}

// Production returns a Logger backed by zap's production configuration,
// for clients that want structured logs without constructing their own
// *zap.Logger.
func Production() Logger {
	z, err := zap.NewProduction()
	if err != nil {
		return Discard
	}
	return NewZapLogger(z)
}

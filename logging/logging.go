package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// LogLevelToZap translates a log level enum to a zap level. logr verbosity
// V(n) is logged at zap level -n, so DEBUG enables V(1) and TRACE enables V(2).
func LogLevelToZap(level int) zapcore.Level {
	switch level {
	case TraceLevel:
		return zapcore.Level(-2)
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// New produces a logr.Logger backed by zap, which logs at or above the given level to
// stderr. Every entry carries the configured level as "logLevel".
func New(level int) (logr.Logger, error) {
	return build(level)
}

func build(level int, opts ...zap.Option) (logr.Logger, error) {
	conf := zap.NewDevelopmentConfig()
	conf.Level = zap.NewAtomicLevelAt(LogLevelToZap(level))
	conf.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	conf.DisableStacktrace = level > ErrorLevel
	zl, err := conf.Build(opts...)
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl).WithName("tabular").WithValues("logLevel", LogLevelToString(level)), nil
}

// NewWithCore produces a logr.Logger writing to an existing zapcore.Core
func NewWithCore(core zapcore.Core) logr.Logger {
	return zapr.NewLogger(zap.New(core)).WithName("tabular")
}

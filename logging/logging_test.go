package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelToString(t *testing.T) {
	require.Equal(t, "TRACE", LogLevelToString(TraceLevel))
	require.Equal(t, "INFO", LogLevelToString(InfoLevel))
	require.Equal(t, "FATAL", LogLevelToString(FatalLevel))
}

func TestVerbosityFollowsLevel(t *testing.T) {
	core, logs := observer.New(LogLevelToZap(DebugLevel))
	logger := NewWithCore(core)
	logger.V(1).Info("debug message", "batches", 3)
	logger.V(2).Info("trace message")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "debug message", entry.Message)
	require.Equal(t, "tabular", entry.LoggerName)
	require.EqualValues(t, 3, entry.ContextMap()["batches"])
}

func TestNew(t *testing.T) {
	logger, err := New(WarnLevel)
	require.Nil(t, err)
	require.False(t, logger.V(0).Enabled())
	require.Equal(t, zapcore.Level(-2), LogLevelToZap(TraceLevel))
}

func TestNewTagsEntriesWithLevel(t *testing.T) {
	core, logs := observer.New(LogLevelToZap(TraceLevel))
	logger, err := build(DebugLevel, zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }))
	require.Nil(t, err)
	logger.V(1).Info("fitting")
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "DEBUG", logs.All()[0].ContextMap()["logLevel"])
}

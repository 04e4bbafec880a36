package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"rockalpatio/pkg/trace"
)

func TestNewLoggerLevel(t *testing.T) {
	assert.True(t, NewLogger("debug", "json").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, NewLogger("warn", "console").Core().Enabled(zapcore.InfoLevel))
	assert.False(t, NewLogger("nonsense", "").Core().Enabled(zapcore.DebugLevel))
	assert.True(t, NewLogger("", "").Core().Enabled(zapcore.InfoLevel))
}

func TestWithTraceAddsField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithTrace(trace.WithContext(context.Background(), "t-1"), base).Info("with")
	WithTrace(context.Background(), base).Info("without")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "t-1", entries[0].ContextMap()["trace_id"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
}

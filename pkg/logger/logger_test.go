package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNewDefaultsToErrorLevel(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestInitReplacesGlobal(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Encoding: "json"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init(DefaultConfig()))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestWithAddsFieldsToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mu.Lock()
	prev := globalLogger
	globalLogger = zap.New(core)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		globalLogger = prev
		mu.Unlock()
	})

	With(zap.String("version", "0.1.0")).Debug("starting probe")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "starting probe", entries[0].Message)
	assert.Equal(t, "0.1.0", entries[0].ContextMap()["version"])
}

package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	lg, err := NewLogger("debug")
	require.NoError(t, err)
	require.True(t, lg.Core().Enabled(zapcore.DebugLevel))

	lg, err = NewLogger("loud")
	require.NoError(t, err)
	require.False(t, lg.Core().Enabled(zapcore.DebugLevel))
	require.True(t, lg.Core().Enabled(zapcore.InfoLevel))
}

func TestContextLogger(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
}

func TestPrintfAdapterLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	NewPrintfAdapter(zap.New(core)).Printf("[DEBUG] %s", "retrying")
	require.Equal(t, 1, logs.FilterMessage("[DEBUG] retrying").Len())
}

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, wantLevels[i], e.Level)
	}
	assert.Equal(t, "inf", entries[1].Message)
	assert.EqualValues(t, 2, entries[1].ContextMap()["b"])
}

func TestZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("component", "cart")

	log.Info(context.Background(), "synced", "items", 3)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "cart", fields["component"])
	assert.EqualValues(t, 3, fields["items"])
}

func TestNew_SelectsBackend(t *testing.T) {
	l, err := New("zap", "debug")
	require.NoError(t, err)
	_, ok := l.(*ZapLogger)
	assert.True(t, ok)

	l, err = New("slog", "warn")
	require.NoError(t, err)
	_, ok = l.(*SlogLogger)
	assert.True(t, ok)

	l, err = New("", "nonsense")
	require.NoError(t, err)
	_, ok = l.(*SlogLogger)
	assert.True(t, ok)
}

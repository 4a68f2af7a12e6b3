package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		l, err := New(mode, "info")
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("dev", "loud")
	assert.Error(t, err)
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("session", "abc")

	l.Info("saved", "sequence", 3)
	l.Debug("skipped")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "saved", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["session"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["sequence"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Warn("ignored", "k", "v")
	l.Sync()
}

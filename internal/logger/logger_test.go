package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING", false))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("", false))
	assert.Equal(t, zapcore.DebugLevel, parseLevel("", true))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error", true))
}

func TestWithAttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With(String("run_id", "abc"))

	log.Info("harvest finished", Int("entries", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["run_id"])
	assert.EqualValues(t, 3, fields["entries"])
}

func TestNewProductionLogger(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	log.Debug("ok")
}

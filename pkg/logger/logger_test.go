package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfo_AddsServiceField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	old := SetServiceName("signal_bot")
	defer SetServiceName(old)

	Info("[SCHED] cycle %s done", "BTC-USDT")
	Error("boom: %d", 42)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "[SCHED] cycle BTC-USDT done", entries[0].Message)
	assert.Equal(t, "signal_bot", entries[0].ContextMap()["service"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init("loud")
	assert.Error(t, err)
}

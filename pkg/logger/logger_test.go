package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetServiceName(t *testing.T) {
	old := SetServiceName("signal_bot")
	defer SetServiceName(old)

	require.Equal(t, "signal_bot", SetServiceName("other"))
}

func TestInit(t *testing.T) {
	require.NoError(t, Init("signal_bot", "debug"))
	require.NotNil(t, InfoLogger)
	require.NotPanics(t, func() {
		Info("hello %s", "world")
		Warn("warn %d", 1)
		Debug("debug")
		Error("error %v", nil)
	})

	// неизвестный уровень откатывается на info
	require.NoError(t, Init("signal_bot", "nope"))
	InitNop()
}

func TestPanicsWithoutInit(t *testing.T) {
	InfoLogger = nil
	defer InitNop()

	require.Panics(t, func() { Info("x") })
}

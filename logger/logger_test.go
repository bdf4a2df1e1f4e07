package logger

import (
	"testing"

	assert "github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log := New("debug", "json")
	assert.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log = New("warn", "console")
	assert.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	// Unknown levels fall back to a usable logger.
	assert.NotNil(t, New("nonsense", "json"))
}

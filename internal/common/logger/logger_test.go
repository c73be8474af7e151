package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sitegauge/engine/internal/common/configtypes"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "debug", expected: zap.DebugLevel},
		{input: "info", expected: zap.InfoLevel},
		{input: "warn", expected: zap.WarnLevel},
		{input: "error", expected: zap.ErrorLevel},
		{input: "bogus", expected: zap.InfoLevel},
		{input: "", expected: zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestResolveLogLevel(t *testing.T) {
	assert.Equal(t, zap.WarnLevel, resolveLogLevel("warn", zap.InfoLevel))
	assert.Equal(t, zap.DebugLevel, resolveLogLevel("", zap.DebugLevel))
}

func TestNewLoggerRequiresOutput(t *testing.T) {
	_, err := NewLogger(configtypes.LogConfig{Level: "info"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one log output")
}

func TestNewLoggerFileRequiresPath(t *testing.T) {
	_, err := NewLogger(configtypes.LogConfig{
		Level: "info",
		File:  configtypes.FileLogConfig{Enabled: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file.path")
}

func TestNewLoggerConsoleAndFile(t *testing.T) {
	log, err := NewLogger(configtypes.LogConfig{
		Level:   "debug",
		Console: configtypes.ConsoleLogConfig{Enabled: true, Format: "console"},
		File: configtypes.FileLogConfig{
			Enabled: true,
			Path:    filepath.Join(t.TempDir(), "test.log"),
			Format:  "json",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Debug("debug message reaches both cores")
	_ = log.Sync() // stdout sync can fail on some platforms; ignore

}

func TestNewDefaultLogger(t *testing.T) {
	log, err := NewDefaultLogger()
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}

package lpclog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_ConsoleOnly(t *testing.T) {
	logger, err := New("test", Config{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, logger.Logger)
	logger.Sugar().Infow("hello")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := New("test", Config{Level: "not-a-level"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logger.consoleLevel.Level())
}

func TestNew_WithFilePathCreatesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "lpci.log")

	logger, err := New("test", Config{Level: "info", FilePath: logPath})
	require.NoError(t, err)
	logger.Sugar().Infow("job started", "job", "build")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "job started")
	assert.Contains(t, string(data), "build")
}

func TestVerbose_LowersAndRestoresConsoleLevel(t *testing.T) {
	logger, err := New("test", Config{Level: "info"})
	require.NoError(t, err)

	restore := logger.Verbose()
	assert.Equal(t, zapcore.DebugLevel, logger.consoleLevel.Level())

	restore()
	assert.Equal(t, zapcore.InfoLevel, logger.consoleLevel.Level())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, 50, cfg.MaxSizeMB)
	assert.Equal(t, 5, cfg.MaxBackups)
	assert.Equal(t, 28, cfg.MaxAgeDays)
}

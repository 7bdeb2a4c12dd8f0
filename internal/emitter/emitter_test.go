package emitter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpci-go/internal/lpclog"
)

func newTestLogger(t *testing.T) (*lpclog.Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "lpci.log")
	logger, err := lpclog.New("test", lpclog.Config{Level: "info", FilePath: logPath})
	require.NoError(t, err)
	return logger, logPath
}

func TestLogEmitter_Progress(t *testing.T) {
	logger, logPath := newTestLogger(t)
	e := NewLogEmitter(logger)

	e.Progress(Event{Job: "build", Series: "noble", Arch: "amd64", Stage: "run", Detail: "make"})
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"job":"build"`)
	assert.Contains(t, string(data), `"stage":"run"`)
}

func TestLogEmitter_Error(t *testing.T) {
	logger, logPath := newTestLogger(t)
	e := NewLogEmitter(logger)

	e.Error("build", errors.New("boom"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "job failed")
	assert.Contains(t, string(data), "boom")
}

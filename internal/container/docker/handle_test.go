package docker

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFileTar_RoundTrips(t *testing.T) {
	reader, err := singleFileTar("file.txt", []byte("contents"))
	require.NoError(t, err)

	tr := tar.NewReader(reader)
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "file.txt", hdr.Name)

	data, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestReadHostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	data, err := readHostFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestReadHostFile_MissingFileIsFatal(t *testing.T) {
	_, err := readHostFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteHostFile_CreatesParentDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "deep", "output.txt")

	require.NoError(t, writeHostFile(dest, bytes.NewBufferString("payload")))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

package yamlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadProjectFile_RelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lpci.yaml", "jobs:\n  build: {}\n")

	doc, err := ReadProjectFile(dir, "lpci.yaml")
	require.NoError(t, err)
	assert.Contains(t, doc, "jobs")
}

func TestReadProjectFile_NestedRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join("sub", "extra.yaml"), "key: value\n")

	doc, err := ReadProjectFile(dir, filepath.Join("sub", "extra.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "value", doc["key"])
}

func TestReadProjectFile_EscapingParentIsRejected(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, outside, "secret.yaml", "key: value\n")

	relToOutside, err := filepath.Rel(dir, filepath.Join(outside, "secret.yaml"))
	require.NoError(t, err)

	_, err = ReadProjectFile(dir, relToOutside)
	assert.Error(t, err)
}

func TestReadProjectFile_AbsolutePathOutsideProjectIsRejected(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, outside, "secret.yaml", "key: value\n")

	_, err := ReadProjectFile(dir, filepath.Join(outside, "secret.yaml"))
	assert.Error(t, err)
}

func TestReadProjectFile_MalformedYAMLIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "key: [unclosed\n")

	_, err := ReadProjectFile(dir, "bad.yaml")
	assert.Error(t, err)
}

func TestReadProjectFile_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadProjectFile(dir, "missing.yaml")
	assert.Error(t, err)
}

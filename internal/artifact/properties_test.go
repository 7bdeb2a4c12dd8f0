package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpci-go/internal/config"
)

func TestParseDotEnv(t *testing.T) {
	data := []byte(`
# a comment
FOO=bar
BAZ=
DELETE_ME
  SPACED = value with spaces
`)

	got := ParseDotEnv(data)
	require.Contains(t, got, "FOO")
	assert.Equal(t, "bar", *got["FOO"])
	require.Contains(t, got, "BAZ")
	assert.Equal(t, "", *got["BAZ"])
	require.Contains(t, got, "DELETE_ME")
	assert.Nil(t, got["DELETE_ME"])
	require.Contains(t, got, "SPACED")
	assert.Equal(t, " value with spaces", *got["SPACED"])
}

func TestBuildProperties_DynamicOverridesAndDeletes(t *testing.T) {
	base := map[string]interface{}{"version": "1.0", "removed-later": "x"}
	override := "2.0"
	dynamic := map[string]*string{
		"version":       &override,
		"removed-later": nil,
	}

	props := BuildProperties(base, dynamic, nil)
	assert.Equal(t, "2.0", props["version"])
	assert.NotContains(t, props, "removed-later")
}

func TestBuildProperties_LicenseOverlay(t *testing.T) {
	props := BuildProperties(nil, nil, &config.License{SPDX: "MIT"})
	license, ok := props["license"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "MIT", license["spdx"])
	assert.Nil(t, license["path"])
}

func TestBuildProperties_NoLicense(t *testing.T) {
	props := BuildProperties(map[string]interface{}{"a": "b"}, nil, nil)
	assert.NotContains(t, props, "license")
	assert.Equal(t, "b", props["a"])
}

func TestWriteProperties_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "properties")

	err := WriteProperties(path, map[string]interface{}{"k": "v"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"k": "v"`)
}

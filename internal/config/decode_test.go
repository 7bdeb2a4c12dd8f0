package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseJobMap() map[string]interface{} {
	return map[string]interface{}{
		"series":        "noble",
		"architectures": "amd64",
		"run":           "make build",
	}
}

func TestDecodeJob_ArchitecturesAcceptsBareString(t *testing.T) {
	job, err := decodeJob("build", baseJobMap())
	require.NoError(t, err)
	assert.Equal(t, []string{"amd64"}, job.Architectures)
}

func TestDecodeJob_ArchitecturesAcceptsList(t *testing.T) {
	raw := baseJobMap()
	raw["architectures"] = []interface{}{"amd64", "arm64"}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"amd64", "arm64"}, job.Architectures)
}

func TestDecodeJob_MissingSeriesIsFatal(t *testing.T) {
	raw := baseJobMap()
	delete(raw, "series")
	_, err := decodeJob("build", raw)
	assert.Error(t, err)
}

func TestDecodeJob_EmptyArchitecturesIsFatal(t *testing.T) {
	raw := baseJobMap()
	raw["architectures"] = []interface{}{}
	_, err := decodeJob("build", raw)
	assert.Error(t, err)
}

func TestDecodeJob_EnvironmentNullDeletesKey(t *testing.T) {
	raw := baseJobMap()
	raw["environment"] = map[string]interface{}{"FOO": "bar", "REMOVED": nil}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	require.Contains(t, job.Environment, "REMOVED")
	assert.Nil(t, job.Environment["REMOVED"])
	require.NotNil(t, job.Environment["FOO"])
	assert.Equal(t, "bar", *job.Environment["FOO"])
}

func TestDecodeJob_SnapsShortForm(t *testing.T) {
	raw := baseJobMap()
	raw["snaps"] = []interface{}{"core20"}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	require.Len(t, job.Snaps, 1)
	assert.Equal(t, "core20", job.Snaps[0].Name)
	assert.True(t, job.Snaps[0].Classic)
}

func TestDecodeJob_SnapsLongForm(t *testing.T) {
	raw := baseJobMap()
	raw["snaps"] = []interface{}{
		map[string]interface{}{"name": "go", "channel": "1.22/stable", "classic": true},
	}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	require.Len(t, job.Snaps, 1)
	assert.Equal(t, "go", job.Snaps[0].Name)
	assert.Equal(t, "1.22/stable", job.Snaps[0].Channel)
	assert.True(t, job.Snaps[0].Classic)
}

func TestDecodeJob_SnapsLongFormDefaults(t *testing.T) {
	raw := baseJobMap()
	raw["snaps"] = []interface{}{map[string]interface{}{"name": "go"}}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	assert.Equal(t, "latest/stable", job.Snaps[0].Channel)
	assert.False(t, job.Snaps[0].Classic)
}

func TestDecodeJob_OutputWithExpiresAndChannels(t *testing.T) {
	raw := baseJobMap()
	raw["output"] = map[string]interface{}{
		"paths":    []interface{}{"dist/*"},
		"channels": []interface{}{"edge"},
		"expires":  "1:00:00",
	}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	require.NotNil(t, job.Output.Expires)
	assert.Equal(t, []string{"edge"}, job.Output.Channels)
}

func TestDecodeJob_OutputNegativeExpiresIsFatal(t *testing.T) {
	raw := baseJobMap()
	raw["output"] = map[string]interface{}{
		"paths":   []interface{}{"dist/*"},
		"expires": "-1:00:00",
	}
	_, err := decodeJob("build", raw)
	assert.Error(t, err)
}

func TestDecodeJob_PackageRepositoriesTrustedFlag(t *testing.T) {
	raw := baseJobMap()
	raw["package-repositories"] = []interface{}{
		map[string]interface{}{"url": "https://example.com/repo", "components": []interface{}{"main"}, "trusted": true},
	}
	job, err := decodeJob("build", raw)
	require.NoError(t, err)
	require.Len(t, job.PackageRepositories, 1)
	require.NotNil(t, job.PackageRepositories[0].Trusted)
	assert.True(t, *job.PackageRepositories[0].Trusted)
	assert.Equal(t, "apt", job.PackageRepositories[0].Type)
}

func TestDecodeJob_InputRequiresBothFields(t *testing.T) {
	raw := baseJobMap()
	raw["input"] = map[string]interface{}{"job_name": "upstream"}
	_, err := decodeJob("build", raw)
	assert.Error(t, err)
}

func TestDecodeJob_PluginConfigMustBeMapping(t *testing.T) {
	raw := baseJobMap()
	raw["plugin_config"] = "not-a-mapping"
	_, err := decodeJob("build", raw)
	assert.Error(t, err)
}

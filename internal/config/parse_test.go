package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return name
}

func TestLoad_MinimalSuccessfulDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - lint
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
`)

	cfg, err := Load(dir, path, nil)
	require.NoError(t, err)
	require.Contains(t, cfg.Jobs, "lint")
	require.Len(t, cfg.Jobs["lint"], 1)
	assert.Equal(t, "noble", cfg.Jobs["lint"][0].Series)
	assert.Equal(t, []string{"amd64"}, cfg.Jobs["lint"][0].Architectures)
	assert.Equal(t, [][]string{{"lint"}}, cfg.Pipeline)
}

func TestLoad_MatrixExpansionOrdering(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - test
jobs:
  test:
    architectures: amd64
    run: make test
    matrix:
      - series: jammy
      - series: noble
`)

	cfg, err := Load(dir, path, nil)
	require.NoError(t, err)
	require.Len(t, cfg.Jobs["test"], 2)
	assert.Equal(t, "jammy", cfg.Jobs["test"][0].Series)
	assert.Equal(t, "noble", cfg.Jobs["test"][1].Series)
}

func TestLoad_PipelineReferencesUndefinedJob(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - missing
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_UnknownTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - lint
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
bogus: true
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_MissingJobsKey(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - lint
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_NegativeExpiresIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - build
jobs:
  build:
    series: noble
    architectures: amd64
    run: make build
    output:
      paths: ["dist/*"]
      expires: "-1:00:00"
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_LicenseBothSPDXAndPathIsError(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - lint
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
license:
  spdx: MIT
  path: LICENSE
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_LicenseSPDXOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - lint
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
license:
  spdx: MIT
`)

	cfg, err := Load(dir, path, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.License)
	assert.Equal(t, "MIT", cfg.License.SPDX)
}

func TestLoad_PackageRepositoryBothURLAndPPAIsError(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - build
jobs:
  build:
    series: noble
    architectures: amd64
    run: make build
    package-repositories:
      - url: https://example.com/repo
        ppa: someuser/myarchive
        components: [main]
`)

	_, err := Load(dir, path, nil)
	assert.Error(t, err)
}

func TestLoad_ConfigPathOutsideProjectIsRejected(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	path := writeProjectFile(t, outside, ".launchpad.yaml", `
pipeline:
  - lint
jobs:
  lint:
    series: noble
    architectures: amd64
    run: make lint
`)

	_, err := Load(dir, filepath.Join(outside, path), nil)
	assert.Error(t, err)
}

func TestLoad_UnknownPluginIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".launchpad.yaml", `
pipeline:
  - build
jobs:
  build:
    series: noble
    architectures: amd64
    plugin: does-not-exist
`)

	lookup := fakeLookup{registered: map[string]bool{}}
	_, err := Load(dir, path, lookup)
	assert.Error(t, err)
}

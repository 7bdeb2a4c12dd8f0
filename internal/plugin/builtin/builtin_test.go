package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/lpci-go/internal/config"
	"github.com/gizzahub/lpci-go/internal/plugin"
)

// Every built-in plugin registers itself from an init() in this package;
// importing the package (as the test binary does) is enough to exercise it.
func TestBuiltinPlugins_AllFiveRegistered(t *testing.T) {
	for _, name := range []string{"tox", "pyproject-build", "golang", "miniconda", "conda-build"} {
		_, ok := plugin.Global.New(name)
		assert.Truef(t, ok, "expected %q to be registered", name)
	}
}

func TestToxPlugin_Hooks(t *testing.T) {
	p, ok := plugin.Global.New("tox")
	require.True(t, ok)
	assert.False(t, p.InterpolatesRunCommand())
	assert.Contains(t, p.InstallPackages(plugin.Context{}), "python3-pip")
	assert.Contains(t, p.ExecuteRun(plugin.Context{}), "tox")
}

func TestPyprojectBuildPlugin_Hooks(t *testing.T) {
	p, ok := plugin.Global.New("pyproject-build")
	require.True(t, ok)
	assert.False(t, p.InterpolatesRunCommand())
	assert.Contains(t, p.ExecuteRun(plugin.Context{}), "python3 -m build")
}

func TestGolangPlugin_InterpolatesRunCommand(t *testing.T) {
	p, ok := plugin.Global.New("golang")
	require.True(t, ok)
	assert.True(t, p.InterpolatesRunCommand())

	ctx := plugin.Context{Job: &config.Job{Run: "go test ./..."}}
	run := p.ExecuteRun(ctx)
	assert.Contains(t, run, "/usr/lib/go-1.18/bin/")
	assert.Contains(t, run, "go test ./...")
}

func TestGolangPlugin_VersionOverride(t *testing.T) {
	p, ok := plugin.Global.New("golang")
	require.True(t, ok)

	ctx := plugin.Context{Job: &config.Job{
		Run:          "go build",
		PluginConfig: map[string]interface{}{"golang-version": "1.21"},
	}}
	run := p.ExecuteRun(ctx)
	assert.Contains(t, run, "/usr/lib/go-1.21/bin/")
	assert.Contains(t, p.InstallPackages(ctx), "golang-1.21")
}

func TestGolangPlugin_NoUserRunStillSetsPath(t *testing.T) {
	p, ok := plugin.Global.New("golang")
	require.True(t, ok)

	ctx := plugin.Context{Job: &config.Job{}}
	run := p.ExecuteRun(ctx)
	assert.NotContains(t, run, ";")
	assert.Contains(t, run, "export PATH=")
}

func TestMinicondaPlugin_InterpolatesAndBootstraps(t *testing.T) {
	p, ok := plugin.Global.New("miniconda")
	require.True(t, ok)
	assert.True(t, p.InterpolatesRunCommand())

	ctx := plugin.Context{Job: &config.Job{Run: "pytest"}}
	before := p.ExecuteBeforeRun(ctx)
	assert.Contains(t, before, "miniconda3")

	run := p.ExecuteRun(ctx)
	assert.Contains(t, run, `bin/conda" create`)
	assert.Contains(t, run, "conda activate lpci")
	assert.Contains(t, run, "pytest")
}

func TestMinicondaPlugin_PackageSetIncludesConfiguredExtras(t *testing.T) {
	p, ok := plugin.Global.New("miniconda")
	require.True(t, ok)

	ctx := plugin.Context{Job: &config.Job{
		PluginConfig: map[string]interface{}{
			"conda-python":   "3.11",
			"conda-packages": []interface{}{"numpy"},
			"conda-channels": []interface{}{"conda-forge"},
		},
	}}
	run := p.ExecuteRun(ctx)
	assert.Contains(t, run, "PYTHON=3.11")
	assert.Contains(t, run, "numpy")
	assert.Contains(t, run, "-c conda-forge")
}

func TestCondaBuildPlugin_ExtendsMinicondaPackages(t *testing.T) {
	p, ok := plugin.Global.New("conda-build")
	require.True(t, ok)
	assert.True(t, p.InterpolatesRunCommand())

	pkgs := p.InstallPackages(plugin.Context{})
	assert.Contains(t, pkgs, "conda-build")
	assert.Contains(t, pkgs, "git") // inherited from miniconda.InstallPackages
}

func TestCondaBuildPlugin_RunFindsRecipeUnderConfiguredFolder(t *testing.T) {
	p, ok := plugin.Global.New("conda-build")
	require.True(t, ok)

	ctx := plugin.Context{Job: &config.Job{
		PluginConfig: map[string]interface{}{"recipe-folder": "./packaging"},
	}}
	run := p.ExecuteRun(ctx)
	assert.Contains(t, run, `"./packaging"`)
	assert.Contains(t, run, "conda-build $MFLAGS")
}

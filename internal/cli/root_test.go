package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand("1.2.3")
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["run-one"])
	assert.True(t, names["clean"])
	assert.True(t, names["version"])
}

func TestNewRootCommand_VersionPrintsVersion(t *testing.T) {
	root := NewRootCommand("1.2.3")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestNewRootCommand_RunOneRejectsWrongArgCount(t *testing.T) {
	root := NewRootCommand("1.2.3")
	root.SetArgs([]string{"run-one", "only-one-arg"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	err := root.Execute()
	assert.Error(t, err)
}

func TestNewRootCommand_PersistentFlagDefaults(t *testing.T) {
	root := NewRootCommand("1.2.3")
	flags := root.PersistentFlags()

	configFlag, err := flags.GetString("config")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigPath, configFlag)

	cleanFlag, err := flags.GetBool("clean")
	require.NoError(t, err)
	assert.False(t, cleanFlag)
}

func bindFlags(t *testing.T, v *viper.Viper) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output-directory", "", "")
	fs.Bool("clean", false, "")
	fs.StringSlice("replace-package-repositories", nil, "")
	fs.StringSlice("package-repository", nil, "")
	fs.StringSlice("set-env", nil, "")
	fs.StringSlice("plugin-setting", nil, "")
	fs.String("secrets", "", "")
	fs.StringSlice("apt-replace-repositories", nil, "")
	require.NoError(t, v.BindPFlags(fs))
}

func TestRunOptions_ParsesOverrides(t *testing.T) {
	v := viper.New()
	bindFlags(t, v)
	require.NoError(t, v.Set("set-env", []string{"FOO=bar"}))
	require.NoError(t, v.Set("plugin-setting", []string{"golang-version=1.22"}))
	require.NoError(t, v.Set("clean", true))

	opts, err := runOptions(v)
	require.NoError(t, err)
	assert.True(t, opts.Clean)
	assert.Equal(t, "bar", opts.EnvOverrides["FOO"])
	assert.Equal(t, "1.22", opts.PluginSettings["golang-version"])
}

func TestRunOptions_DeprecatedAliasIsAppended(t *testing.T) {
	v := viper.New()
	bindFlags(t, v)
	require.NoError(t, v.Set("replace-package-repositories", []string{"deb primary"}))
	require.NoError(t, v.Set("apt-replace-repositories", []string{"deb legacy"}))

	opts, err := runOptions(v)
	require.NoError(t, err)
	assert.Contains(t, opts.ReplacePackageRepositories, "deb primary")
	assert.Contains(t, opts.ReplacePackageRepositories, "deb legacy")
}

func TestRunOptions_InvalidSetEnvIsFatal(t *testing.T) {
	v := viper.New()
	bindFlags(t, v)
	require.NoError(t, v.Set("set-env", []string{"NOEQUALSHERE"}))

	_, err := runOptions(v)
	assert.Error(t, err)
}

func TestRunOptions_LoadsSecretsFile(t *testing.T) {
	v := viper.New()
	bindFlags(t, v)
	dir := t.TempDir()
	secretsPath := filepath.Join(dir, "secrets.yaml")
	require.NoError(t, os.WriteFile(secretsPath, []byte("token: s3cr3t\n"), 0o644))
	require.NoError(t, v.Set("secrets", secretsPath))

	opts, err := runOptions(v)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", opts.Secrets["token"])
}

func TestProjectName_UsesDirectoryBaseName(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Base(dir), projectName(dir))
}

package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/bank-insights/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "bank-insights", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "bank card transaction")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	input := root.Cmd.PersistentFlags().Lookup("input")
	require.NotNil(t, input)
	assert.Equal(t, "i", input.Shorthand)

	format := root.Cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "f", format.Shorthand)

	for _, name := range []string{"save-report", "report-file", "config"} {
		assert.NotNil(t, root.Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInitialize_BuildsContainer(t *testing.T) {
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	t.Cleanup(func() {
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
	})

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: warn\noutput:\n  format: table\n"), 0600))

	root.SharedFlags.ConfigFile = configFile
	require.NoError(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))

	require.NotNil(t, root.GetContainer())
	assert.Equal(t, "table", root.AppConfig.Output.Format)
	assert.Same(t, root.GetContainer().GetLogger(), root.GetLogger())
	root.Cmd.PersistentPostRun(root.Cmd, nil)
}

func TestInitialize_InvalidConfig(t *testing.T) {
	originalFlags := root.SharedFlags
	t.Cleanup(func() { root.SharedFlags = originalFlags })

	root.SharedFlags.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	err := root.Cmd.PersistentPreRunE(root.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestGetLogger_BeforeInitialization(t *testing.T) {
	originalContainer := root.AppContainer
	t.Cleanup(func() { root.AppContainer = originalContainer })

	root.AppContainer = nil
	assert.Nil(t, root.GetContainer())
	assert.NotNil(t, root.GetLogger())
}

package settings

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useContainer(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{}
	cfg.Output.Format = "json"
	cfg.Settings.File = filepath.Join(t.TempDir(), "user_settings.json")

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	original, originalConfig := root.AppContainer, root.AppConfig
	root.AppContainer, root.AppConfig = c, cfg
	t.Cleanup(func() {
		root.AppContainer, root.AppConfig = original, originalConfig
		currencies, stocks = nil, nil
	})
	return cfg.Settings.File
}

func TestSettings_AddShowRemove(t *testing.T) {
	useContainer(t)
	var out bytes.Buffer
	addCmd.SetOut(&out)

	currencies, stocks = []string{"usd", "EUR"}, []string{"aapl"}
	require.NoError(t, addCmd.RunE(addCmd, nil))
	assert.JSONEq(t, `{"user_currencies":["USD","EUR"],"user_stocks":["AAPL"]}`, out.String())

	out.Reset()
	removeCmd.SetOut(&out)
	currencies, stocks = []string{"eur"}, nil
	require.NoError(t, removeCmd.RunE(removeCmd, nil))
	assert.JSONEq(t, `{"user_currencies":["USD"],"user_stocks":["AAPL"]}`, out.String())

	out.Reset()
	Cmd.SetOut(&out)
	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.JSONEq(t, `{"user_currencies":["USD"],"user_stocks":["AAPL"]}`, out.String())
}

func TestSettings_UpdateNeedsCodes(t *testing.T) {
	useContainer(t)
	currencies, stocks = nil, nil
	err := addCmd.RunE(addCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestSettings_NoContainer(t *testing.T) {
	original := root.AppContainer
	root.AppContainer = nil
	t.Cleanup(func() { root.AppContainer = original })

	assert.Error(t, Cmd.RunE(Cmd, nil))
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []string{"USD", "GBP"}, Without([]string{"USD", "EUR", "GBP"}, []string{" eur "}))
	assert.Equal(t, []string{}, Without([]string{}, []string{"USD"}))
}

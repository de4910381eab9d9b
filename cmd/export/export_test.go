package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Дата операции;Номер карты;Сумма операции;Категория;Описание\n" +
	"31.12.2021 16:44:00;*7197;-160,89;Супермаркеты;Колхоз\n" +
	"30.12.2021 10:00:00;*7197;-500;Transfers;Ivan I.\n"

func useContainer(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "operations.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0600))

	cfg := &config.Config{}
	cfg.Input.File = input
	cfg.Input.CSVDelimiter = ";"
	cfg.Output.Format = "json"

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	original := root.AppContainer
	root.AppContainer = c
	t.Cleanup(func() {
		root.AppContainer = original
		output, delimiter, category = "", "", ""
	})
	return dir
}

func TestExport_ToStdout(t *testing.T) {
	useContainer(t)
	var out bytes.Buffer
	Cmd.SetOut(&out)

	require.NoError(t, exportFunc(Cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "operation_date;card_number;amount;category;description", lines[0])
	assert.Equal(t, "2021-12-31 16:44:00;7197;-160.89;Супермаркеты;Колхоз", lines[1])
}

func TestExport_ToFileWithCategory(t *testing.T) {
	dir := useContainer(t)
	output = filepath.Join(dir, "out", "transfers.csv")
	delimiter = ","
	category = "Transfers"

	require.NoError(t, exportFunc(Cmd, nil))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2021-12-30 10:00:00,7197,-500.00,Transfers,Ivan I.")
	assert.NotContains(t, string(data), "Колхоз")
}

func TestExport_BadDelimiter(t *testing.T) {
	useContainer(t)
	delimiter = ";;"
	assert.Error(t, exportFunc(Cmd, nil))
}

func TestFilter(t *testing.T) {
	table := models.NewTable([]string{"Category"}, [][]string{{"A"}, {"B"}, {"A"}})
	assert.Len(t, Filter(table, ""), 3)
	assert.Len(t, Filter(table, "A"), 2)
	assert.Empty(t, Filter(table, "C"))
}

package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var header = []string{"Дата операции", "Номер карты", "Сумма операции", "Категория", "Описание"}

var rows = [][]string{
	{"31.12.2021 16:44:00", "*7197", "-160,89", "Супермаркеты", "Колхоз"},
	{"30.12.2021 10:00:00", "*7197", "-500", "Переводы", "Иван И."},
	{"29.12.2021 09:00:00", "*5091", "-64", "Фастфуд", "Burger"},
	{"28.12.2021 09:00:00", "*5091", "-3000", "Наличные", "ATM"},
	{"15.12.2021 12:00:00", "*7197", "50000", "Пополнения", "Зарплата"},
	{"bad date", "*7197", "-10", "Фастфуд", "Unknown"},
}

func newContainer(t *testing.T, encoding string) (*container.Container, string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Input.CSVDelimiter = ";"
	cfg.Input.Encoding = encoding
	cfg.Analysis.TransferCategory = "Переводы"
	cfg.Analysis.CashCategory = "Наличные"
	cfg.Settings.File = filepath.Join(t.TempDir(), "user_settings.json")

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c, t.TempDir()
}

func writeCSV(t *testing.T, path string, encode bool) {
	t.Helper()
	var buf bytes.Buffer
	lines := append([][]string{header}, rows...)
	for _, line := range lines {
		for i, cell := range line {
			if i > 0 {
				buf.WriteByte(';')
			}
			buf.WriteString(cell)
		}
		buf.WriteByte('\n')
	}
	data := buf.Bytes()
	if encode {
		var err error
		data, err = charmap.Windows1251.NewEncoder().Bytes(data)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func writeXLSX(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	lines := append([][]string{header}, rows...)
	for i, line := range lines {
		values := make([]interface{}, len(line))
		for j, cell := range line {
			values[j] = cell
		}
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", ref, &values))
	}
	require.NoError(t, f.SaveAs(path))
}

type answers struct {
	Spending []models.Record
	P2P      []models.Record
	Cashback analysis.CashbackReport
	Savings  string
	Summary  *analysis.PeriodSummary
}

func answer(t *testing.T, c *container.Container, table *models.Table) answers {
	t.Helper()
	a := c.GetAnalyzer()
	ref := time.Date(2021, time.December, 31, 0, 0, 0, 0, time.Local)

	p2p, err := a.FindP2PTransfers(table)
	require.NoError(t, err)
	return answers{
		Spending: a.SpendingByCategory(table, "Фастфуд", ref),
		P2P:      p2p,
		Cashback: a.CashbackByCategory(table, 2021, time.December),
		Savings:  a.RoundUpSavings("2021-12", a.DatedAmounts(table), 100).StringFixed(2),
		Summary:  a.SummarizePeriod(table, ref, "M"),
	}
}

func TestAllInputFormatsGiveTheSameAnswers(t *testing.T) {
	utf8Container, dir := newContainer(t, "utf-8")
	cp1251Container, _ := newContainer(t, "windows-1251")

	csvPath := filepath.Join(dir, "operations.csv")
	cp1251Path := filepath.Join(dir, "operations_cp1251.csv")
	xlsxPath := filepath.Join(dir, "operations.xlsx")
	writeCSV(t, csvPath, false)
	writeCSV(t, cp1251Path, true)
	writeXLSX(t, xlsxPath)

	fromCSV := utf8Container.LoadTable(csvPath)
	fromCP1251 := cp1251Container.LoadTable(cp1251Path)
	fromXLSX := utf8Container.LoadTable(xlsxPath)

	require.Equal(t, len(rows), fromCSV.Len())
	assert.Equal(t, fromCSV, fromCP1251)
	assert.Equal(t, fromCSV, fromXLSX)

	expected := answer(t, utf8Container, fromCSV)
	assert.Equal(t, expected, answer(t, utf8Container, fromXLSX))
	assert.Equal(t, expected, answer(t, cp1251Container, fromCP1251))

	require.Len(t, expected.Spending, 1)
	require.Len(t, expected.P2P, 1)
	assert.Equal(t, "3.20", expected.Cashback["Фастфуд"].StringFixed(2))
	assert.Equal(t, "275.11", expected.Savings)
	require.NotNil(t, expected.Summary)
	assert.Equal(t, "50000.00", expected.Summary.Income.Total.StringFixed(2))
	assert.Equal(t, "3724.89", expected.Summary.Expenses.Total.StringFixed(2))
}

func TestExportedCSVLoadsBack(t *testing.T) {
	c, dir := newContainer(t, "utf-8")
	source := filepath.Join(dir, "operations.csv")
	writeCSV(t, source, false)
	table := c.LoadTable(source)

	exported := filepath.Join(dir, "export", "normalized.csv")
	txs, _ := table.Transactions()
	require.NoError(t, report.ExportFile(c.GetLogger(), exported, txs, ';'))

	reloaded := c.LoadTable(exported)
	require.Equal(t, table.Len(), reloaded.Len())

	a := c.GetAnalyzer()
	before, err := report.EncodeJSON(a.CashbackByCategory(table, 2021, time.December))
	require.NoError(t, err)
	after, err := report.EncodeJSON(a.CashbackByCategory(reloaded, 2021, time.December))
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))

	assert.Equal(t,
		a.RoundUpSavings("2021-12", a.DatedAmounts(table), 50).StringFixed(2),
		a.RoundUpSavings("2021-12", a.DatedAmounts(reloaded), 50).StringFixed(2))
}

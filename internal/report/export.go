package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/fileutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/gocarina/gocsv"
)

// exportRow is the CSV layout of a normalized transaction.
type exportRow struct {
	OperationDate string `csv:"operation_date"`
	CardNumber    string `csv:"card_number"`
	Amount        string `csv:"amount"`
	Category      string `csv:"category"`
	Description   string `csv:"description"`
}

func toExportRows(txs []models.Transaction) []*exportRow {
	rows := make([]*exportRow, 0, len(txs))
	for _, tx := range txs {
		row := &exportRow{
			CardNumber:  tx.CardNumber,
			Category:    tx.Category,
			Description: tx.Description,
		}
		if tx.HasDate {
			row.OperationDate = tx.OperationDate.Format(dateutils.LayoutISOFull)
		}
		if tx.HasAmount {
			row.Amount = tx.Amount.StringFixed(2)
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportCSV writes txs as delimited text with a header row. Unparsed dates
// and amounts are left empty.
func ExportCSV(out io.Writer, txs []models.Transaction, delimiter rune) error {
	writer := csv.NewWriter(out)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	if err := gocsv.MarshalCSV(toExportRows(txs), gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("failed to export transactions: %w", err)
	}
	return nil
}

// ExportFile writes txs to filePath with ExportCSV.
func ExportFile(logger logging.Logger, filePath string, txs []models.Transaction, delimiter rune) error {
	file, err := fileutils.CreateFile(filePath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close export file")
		}
	}()

	if err := ExportCSV(file, txs, delimiter); err != nil {
		return err
	}
	logger.Info("Exported transactions",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(txs)))
	return nil
}

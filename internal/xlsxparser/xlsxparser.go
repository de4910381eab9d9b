// Package xlsxparser reads bank exports stored as Excel workbooks.
package xlsxparser

import (
	"fmt"
	"io"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parser"
	"fjacquet/bank-insights/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// Adapter parses one worksheet of a workbook into a transaction table.
type Adapter struct {
	parser.BaseParser
	sheet string
}

// NewAdapter creates an XLSX parser. An empty sheet selects the first
// worksheet of the workbook.
func NewAdapter(logger logging.Logger, sheet string) *Adapter {
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		sheet:      sheet,
	}
}

// Parse implements parser.Parser.
func (a *Adapter) Parse(r io.Reader) (*models.Table, error) {
	log := a.GetLogger().WithField(logging.FieldParser, "xlsx")

	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "XLSX workbook",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if cerr := workbook.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close workbook")
		}
	}()

	sheet, err := a.resolveSheet(workbook)
	if err != nil {
		return nil, err
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	log.Debug("Read worksheet", logging.F("sheet", sheet), logging.F(logging.FieldCount, len(rows)))

	return parser.BuildTable(rows)
}

func (a *Adapter) resolveSheet(workbook *excelize.File) (string, error) {
	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return "", &parsererror.InvalidFormatError{
			ExpectedFormat: "XLSX workbook",
			Msg:            "workbook has no worksheets",
		}
	}
	if a.sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == a.sheet {
			return name, nil
		}
	}
	return "", &parsererror.InvalidFormatError{
		ExpectedFormat: "XLSX workbook",
		Msg:            fmt.Sprintf("worksheet %q not found", a.sheet),
	}
}

// ParseFile implements parser.FileParser.
func (a *Adapter) ParseFile(filePath string) (*models.Table, error) {
	return a.OpenAndParse(a, filePath)
}

// ValidateFormat implements parser.Validator.
func (a *Adapter) ValidateFormat(filePath string) (bool, error) {
	return a.ValidateColumns(a, filePath)
}

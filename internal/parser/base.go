// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parsererror"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers embed it to share logging and file handling:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements the LoggerConfigurable interface. A nil logger is
// ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// OpenAndParse opens filePath and hands it to p.
func (b *BaseParser) OpenAndParse(p Parser, filePath string) (*models.Table, error) {
	log := b.logger.WithField(logging.FieldFile, filePath)
	started := time.Now()

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open input file")
		return nil, &parsererror.ParseError{
			Parser: fmt.Sprintf("%T", p),
			Field:  "file",
			Value:  filePath,
			Err:    err,
		}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	table, err := p.Parse(file)
	if err != nil {
		log.WithError(err).Error("Failed to parse input file")
		return nil, fmt.Errorf("error parsing %s: %w", filePath, err)
	}

	log.Info("Loaded transaction table",
		logging.F(logging.FieldCount, table.Len()),
		logging.F(logging.FieldDuration, time.Since(started).Milliseconds()))
	return table, nil
}

// ValidateColumns parses filePath with p and checks the columns every query
// needs.
func (b *BaseParser) ValidateColumns(p Parser, filePath string) (bool, error) {
	table, err := b.OpenAndParse(p, filePath)
	if err != nil {
		return false, err
	}
	if err := table.Require(models.FieldOperationDate, models.FieldAmount, models.FieldCategory); err != nil {
		b.logger.WithError(err).Warn("Input file lacks required columns",
			logging.F(logging.FieldFile, filePath))
		return false, nil
	}
	return true, nil
}

// BuildTable turns raw rows into a table: the first non-empty row is the
// header, blank rows are dropped and every cell is trimmed.
func BuildTable(records [][]string) (*models.Table, error) {
	var header []string
	var rows [][]string

	for _, record := range records {
		if isBlank(record) {
			continue
		}
		cells := make([]string, len(record))
		for i, cell := range record {
			cells[i] = strings.TrimSpace(cell)
		}
		if header == nil {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	if header == nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "spreadsheet with a header row",
			Msg:            "no header row found",
		}
	}
	return models.NewTable(header, rows), nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

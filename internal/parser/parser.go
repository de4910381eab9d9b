package parser

import (
	"io"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
)

// Parser turns a spreadsheet export into a transaction table.
type Parser interface {
	// Parse reads the whole export from r. The first non-empty row is the
	// header; every following non-empty row becomes a table row with its
	// cells kept as raw text. Implementations return parsererror types for
	// format failures.
	Parse(r io.Reader) (*models.Table, error)
}

// FileParser parses a file by path.
type FileParser interface {
	ParseFile(filePath string) (*models.Table, error)
}

// Validator checks whether a file can be analyzed.
type Validator interface {
	// ValidateFormat reports whether filePath parses and carries the
	// operation date, amount and category columns.
	ValidateFormat(filePath string) (bool, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be replaced.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser combines every parser capability.
type FullParser interface {
	Parser
	FileParser
	Validator
	LoggerConfigurable
}

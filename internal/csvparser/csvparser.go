// Package csvparser reads bank exports saved as delimited text.
package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parser"
	"fjacquet/bank-insights/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter is the separator of the bank's CSV export.
const DefaultDelimiter = ';'

// Adapter parses delimited exports into a transaction table.
type Adapter struct {
	parser.BaseParser
	delimiter rune
	encoding  string
}

// NewAdapter creates a CSV parser. A zero delimiter means ';'. encoding is
// "utf-8" (the default, a BOM is tolerated) or "windows-1251".
func NewAdapter(logger logging.Logger, delimiter rune, encoding string) *Adapter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		delimiter:  delimiter,
		encoding:   encoding,
	}
}

// Parse implements parser.Parser.
func (a *Adapter) Parse(r io.Reader) (*models.Table, error) {
	log := a.GetLogger().WithFields(
		logging.F(logging.FieldParser, "csv"),
		logging.F(logging.FieldDelimiter, string(a.delimiter)))

	decoder, err := decoderFor(a.encoding)
	if err != nil {
		return nil, err
	}

	reader := a.newReader(transform.NewReader(r, decoder))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: fmt.Sprintf("CSV separated by %q", a.delimiter),
			Msg:            err.Error(),
		}
	}
	log.Debug("Read CSV records", logging.F(logging.FieldCount, len(records)))

	return parser.BuildTable(records)
}

// newReader builds a lenient gocsv reader using the configured delimiter.
func (a *Adapter) newReader(in io.Reader) gocsv.CSVReader {
	reader := gocsv.LazyCSVReader(in)
	if r, ok := reader.(*csv.Reader); ok {
		r.Comma = a.delimiter
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
	}
	return reader
}

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
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

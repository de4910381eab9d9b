// Package models defines the transaction table loaded from a bank export and
// the normalized views that queries work on.
package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"fjacquet/bank-insights/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Field is a logical column of the bank export.
type Field string

const (
	FieldOperationDate Field = "operation_date"
	FieldAmount        Field = "amount"
	FieldCategory      Field = "category"
	FieldDescription   Field = "description"
	FieldCardNumber    Field = "card_number"
)

// DefaultAliases lists the headers recognised for each logical field. The
// first alias is the header written by the bank export; the last is the
// header of our own CSV export.
var DefaultAliases = map[Field][]string{
	FieldOperationDate: {"Дата операции", "Operation date", "Date", string(FieldOperationDate)},
	FieldAmount:        {"Сумма операции", "Amount", "Operation amount", string(FieldAmount)},
	FieldCategory:      {"Категория", "Category", string(FieldCategory)},
	FieldDescription:   {"Описание", "Description", string(FieldDescription)},
	FieldCardNumber:    {"Номер карты", "Card number", "Card", string(FieldCardNumber)},
}

// Table is the read-only snapshot of a transaction file: ordered headers and
// rows of raw text cells. Queries never modify it.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table, padding or truncating every row to the number of
// columns so that cell access never goes out of range.
func NewTable(columns []string, rows [][]string) *Table {
	normalized := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		normalized = append(normalized, cells)
	}
	return &Table{Columns: columns, Rows: normalized}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// FieldIndex returns the column index holding f.
func (t *Table) FieldIndex(f Field) (int, bool) {
	if t == nil {
		return -1, false
	}
	for _, alias := range DefaultAliases[f] {
		for i, column := range t.Columns {
			if strings.EqualFold(strings.TrimSpace(column), alias) {
				return i, true
			}
		}
	}
	return -1, false
}

// Require returns a MissingColumnError for the first field without a column.
func (t *Table) Require(fields ...Field) error {
	for _, f := range fields {
		if _, ok := t.FieldIndex(f); !ok {
			return &parsererror.MissingColumnError{Field: string(f)}
		}
	}
	return nil
}

// Cell returns the raw value of f in row, or "" when the column is absent.
func (t *Table) Cell(row int, f Field) string {
	idx, ok := t.FieldIndex(f)
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// Record returns row as an ordered list of cells.
func (t *Table) Record(row int) Record {
	record := make(Record, len(t.Columns))
	for i, column := range t.Columns {
		record[i] = Cell{Column: column, Value: t.Rows[row][i]}
	}
	return record
}

// Cell is one column/value pair of a Record.
type Cell struct {
	Column string
	Value  string
}

// Record is a row serialized in source column order.
type Record []Cell

// Get returns the value of column and whether it exists.
func (r Record) Get(column string) (string, bool) {
	for _, cell := range r {
		if cell.Column == column {
			return cell.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes the record as a JSON object keeping column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cell := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(cell.Column)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(cell.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the record as a YAML mapping keeping column order.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, cell := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell.Column},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell.Value},
		)
	}
	return node, nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

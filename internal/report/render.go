package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// NoData is printed by the table renderer for empty results.
const NoData = "No data for the selected parameters."

// Render writes result to out in format.
func Render(out io.Writer, format string, result interface{}) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := EncodeJSON(result)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
		_, err = out.Write(data)
		return err
	case FormatYAML:
		return renderYAML(out, result)
	case FormatTable:
		return renderTable(out, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderYAML(out io.Writer, result interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(plain(result)); err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	return enc.Close()
}

func renderTable(out io.Writer, result interface{}) error {
	sections, ok := sectionsOf(result)
	if !ok {
		return renderYAML(out, result)
	}
	if isEmpty(sections) {
		_, err := fmt.Fprintln(out, NoData)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		if section.Title != "" {
			fmt.Fprintln(tw, section.Title)
		}
		if len(section.Header) > 0 {
			fmt.Fprintln(tw, strings.Join(section.Header, "\t"))
		}
		for _, row := range section.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

func isEmpty(sections []Section) bool {
	for _, s := range sections {
		if len(s.Rows) > 0 {
			return false
		}
	}
	return true
}

// plain replaces values that do not serialize as numbers on their own.
func plain(result interface{}) interface{} {
	if d, ok := result.(decimal.Decimal); ok {
		return json.Number(d.StringFixed(2))
	}
	return result
}

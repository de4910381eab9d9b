// Package report persists query results as JSON files and renders them for
// the terminal.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/bank-insights/internal/fileutils"
	"fjacquet/bank-insights/internal/logging"
)

// Writer saves results as JSON files in a report directory.
type Writer struct {
	logger    logging.Logger
	directory string
	now       func() time.Time
}

// NewWriter creates a Writer for directory. An empty directory means the
// working directory.
func NewWriter(logger logging.Logger, directory string) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{
		logger:    logger.WithField(logging.FieldComponent, "report_writer"),
		directory: directory,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for generated file names.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Path returns where Save writes for filename: filename itself when given,
// otherwise report_YYYYMMDD_HHMMSS.json in the report directory.
func (w *Writer) Path(filename string) string {
	if filename != "" {
		return filename
	}
	return filepath.Join(w.directory, fileutils.TimestampedName("report", "json", w.now()))
}

// Save writes result as UTF-8 JSON indented by two spaces, keeping
// non-ASCII text and HTML characters unescaped. It returns the written path.
func (w *Writer) Save(result interface{}, filename string) (string, error) {
	path := w.Path(filename)

	data, err := EncodeJSON(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", path, err)
	}

	w.logger.Info("Saved report", logging.F(logging.FieldReportFile, path))
	return path, nil
}

// EncodeJSON renders result the way saved reports are written.
func EncodeJSON(result interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plain(result)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Persist runs query and saves its result through w before returning it.
// Save failures are logged and never reach the caller; a nil w only runs
// the query.
func Persist[T any](w *Writer, filename string, query func() T) T {
	result := query()
	if w == nil {
		return result
	}
	if _, err := w.Save(result, filename); err != nil {
		w.logger.WithError(err).Error("Failed to persist report",
			logging.F(logging.FieldReportFile, w.Path(filename)))
	}
	return result
}

// Package batch merges several transaction exports into one table.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parser"
)

// Aggregator collects export files from a directory and merges their tables.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger.WithField(logging.FieldComponent, "batch")}
}

// CollectFiles lists the supported export files directly inside dir,
// sorted by name. Subdirectories are not descended into.
func (a *Aggregator) CollectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := parser.DetectFormat(path); err != nil {
			a.logger.Debug("Skipping unsupported file", logging.F(logging.FieldFile, path))
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// LoadDirectory parses every supported file of dir with load and merges the
// results. Files that fail to load are logged and skipped.
func (a *Aggregator) LoadDirectory(dir string, load func(path string) (*models.Table, error)) (*models.Table, error) {
	files, err := a.CollectFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no transaction files in %s", dir)
	}

	tables := make([]*models.Table, 0, len(files))
	for _, file := range files {
		table, err := load(file)
		if err != nil {
			a.logger.WithError(err).Error("Failed to load file, skipping",
				logging.F(logging.FieldFile, file))
			continue
		}
		a.logger.Debug("Loaded transactions from file",
			logging.F(logging.FieldCount, table.Len()),
			logging.F(logging.FieldFile, filepath.Base(file)))
		tables = append(tables, table)
	}
	return a.Merge(tables...), nil
}

// Merge concatenates tables in the given order. The merged header is the
// union of the column names in first-seen order; cells of columns a table
// lacks stay empty. Rows identical to an earlier row are dropped, which
// removes the overlap of exports covering the same days.
func (a *Aggregator) Merge(tables ...*models.Table) *models.Table {
	var columns []string
	position := map[string]int{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			if _, ok := position[c]; !ok {
				position[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}

	seen := map[string]bool{}
	var rows [][]string
	duplicates := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, source := range t.Rows {
			row := make([]string, len(columns))
			for i, c := range t.Columns {
				if i < len(source) {
					row[position[c]] = source[i]
				}
			}
			key := strings.Join(row, "\x1f")
			if seen[key] {
				duplicates++
				continue
			}
			seen[key] = true
			rows = append(rows, row)
		}
	}

	if duplicates > 0 {
		a.logger.Warn("Dropped duplicate rows while merging",
			logging.F(logging.FieldSkipped, duplicates))
	}
	a.logger.Info("Merged transaction tables",
		logging.F("tables", len(tables)),
		logging.F(logging.FieldCount, len(rows)))
	return models.NewTable(columns, rows)
}

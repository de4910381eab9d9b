package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an input file type.
type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
)

// DetectFormat picks the input format from the file extension.
func DetectFormat(filePath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		return XLSX, nil
	case ".csv", ".txt":
		return CSV, nil
	default:
		return "", fmt.Errorf("unsupported input file type: %s", filePath)
	}
}

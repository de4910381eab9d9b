// Package validation checks command-line arguments before they reach the
// analyzer. Rejected values are reported as *parsererror.ValidationError.
package validation

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/parser"
	"fjacquet/bank-insights/internal/parsererror"
)

// IsValidInputFile checks that path is an existing directory, or a regular
// file with a supported extension.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{Reason: "no input file given"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "input file does not exist"}
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a regular file"}
	}
	if _, err := parser.DetectFormat(path); err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: err.Error()}
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range config.OutputFormats {
		if format == f {
			return nil
		}
	}
	return &parsererror.ValidationError{
		Reason: fmt.Sprintf("unsupported output format: %s. Supported formats are %s",
			format, strings.Join(config.OutputFormats, ", ")),
	}
}

// ParseReferenceDate parses an optional "DD.MM.YYYY HH:MM:SS" argument. An
// empty value gives the zero time, meaning "now" to the analyzer.
func ParseReferenceDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := dateutils.ParseOperationDate(value)
	if err != nil {
		return time.Time{}, &parsererror.ValidationError{
			Reason: fmt.Sprintf("invalid date %q, expected DD.MM.YYYY HH:MM:SS", value),
		}
	}
	return t, nil
}

// ParseReferenceMoment works like ParseReferenceDate for views that depend
// on the time of day. A value without a time covers that whole day: today
// resolves to now, any other day to its last second.
func ParseReferenceMoment(value string, now time.Time) (time.Time, error) {
	t, err := ParseReferenceDate(value)
	if err != nil || t.IsZero() || strings.Contains(value, ":") {
		return t, err
	}
	if dateutils.StartOfDay(now).Equal(t) {
		return now, nil
	}
	return dateutils.EndOfDay(t), nil
}

// IsValidDelimiter checks that a CSV delimiter is a single character.
func IsValidDelimiter(delimiter string) (rune, error) {
	if utf8.RuneCountInString(delimiter) != 1 {
		return 0, &parsererror.ValidationError{
			Reason: fmt.Sprintf("delimiter must be a single character, got %q", delimiter),
		}
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	if r == '\n' || r == '\r' || r == '"' {
		return 0, &parsererror.ValidationError{
			Reason: fmt.Sprintf("delimiter %q is not allowed", delimiter),
		}
	}
	return r, nil
}

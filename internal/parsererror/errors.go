// Package parsererror holds the typed errors shared by parsers and queries.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks arguments a query cannot work with at all, as
// opposed to valid input that simply matches nothing.
var ErrInvalidInput = errors.New("invalid input")

// ParseError is a single cell that could not be converted.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidInputError describes why an argument was rejected. It matches
// ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Operation string
	Reason    string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Operation, ErrInvalidInput, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MissingColumnError reports a logical field with no matching header.
type MissingColumnError struct {
	Field string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column for field '%s'", e.Field)
}

// ValidationError is a rejected user-supplied value or file.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError is returned when an input file does not have the
// layout a parser expects.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/parsererror"
	"fjacquet/bank-insights/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInputFile(t *testing.T) {
	tmpDir := t.TempDir()

	xlsx := filepath.Join(tmpDir, "operations.xlsx")
	require.NoError(t, os.WriteFile(xlsx, []byte("x"), 0600))
	csv := filepath.Join(tmpDir, "operations.csv")
	require.NoError(t, os.WriteFile(csv, []byte("x"), 0600))
	pdf := filepath.Join(tmpDir, "statement.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("x"), 0600))

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
		filePath    string
	}{
		{name: "xlsx file", path: xlsx},
		{name: "csv file", path: csv},
		{name: "unsupported extension", path: pdf, expectError: true, errContains: "unsupported", filePath: pdf},
		{name: "missing file", path: filepath.Join(tmpDir, "nope.xlsx"), expectError: true, errContains: "does not exist", filePath: filepath.Join(tmpDir, "nope.xlsx")},
		{name: "directory", path: tmpDir},
		{name: "empty path", path: "  ", expectError: true, errContains: "no input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputFile(tt.path)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)

				var validationErr *parsererror.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tt.filePath, validationErr.FilePath)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	for _, format := range []string{"json", "yaml", "table"} {
		assert.NoError(t, validation.IsValidOutputFormat(format), format)
	}
	for _, format := range []string{"", "xml", "JSON", "csv"} {
		err := validation.IsValidOutputFormat(format)
		require.Error(t, err, format)
		assert.Contains(t, err.Error(), "unsupported output format")

		var validationErr *parsererror.ValidationError
		assert.True(t, errors.As(err, &validationErr), format)
	}
}

func TestParseReferenceDate(t *testing.T) {
	got, err := validation.ParseReferenceDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = validation.ParseReferenceDate("31.12.2021 16:44:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.December, 31, 16, 44, 0, 0, time.Local), got)

	_, err = validation.ParseReferenceDate("2021-12-31T16:44:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected DD.MM.YYYY HH:MM:SS")

	var validationErr *parsererror.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Reason, `"2021-12-31T16:44:00"`)
}

func TestParseReferenceMoment(t *testing.T) {
	now := time.Date(2025, time.March, 9, 9, 15, 0, 0, time.Local)

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{name: "empty means now", value: "", want: time.Time{}},
		{name: "full timestamp is kept", value: "09.03.2025 07:00:00", want: time.Date(2025, time.March, 9, 7, 0, 0, 0, time.Local)},
		{name: "today without time is now", value: "09.03.2025", want: now},
		{name: "past day covers the whole day", value: "28.02.2025", want: dateutils.EndOfDay(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.Local))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ParseReferenceMoment(tt.value, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := validation.ParseReferenceMoment("09/03/2025", now)
	var validationErr *parsererror.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestIsValidDelimiter(t *testing.T) {
	r, err := validation.IsValidDelimiter(";")
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	r, err = validation.IsValidDelimiter("\t")
	require.NoError(t, err)
	assert.Equal(t, '\t', r)

	for _, bad := range []string{"", ";;", "\n", `"`} {
		_, err := validation.IsValidDelimiter(bad)
		require.Error(t, err, "%q", bad)

		var validationErr *parsererror.ValidationError
		assert.True(t, errors.As(err, &validationErr), "%q", bad)
	}
}

package parsererror

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_Unwrap(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := &ParseError{Parser: "csv", Field: "amount", Value: "abc", Err: cause}

	assert.Equal(t, "csv: failed to parse amount='abc': "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestInvalidInputError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("p2p: %w", &InvalidInputError{Operation: "find_p2p_transfers", Reason: "table is nil"})

	assert.True(t, errors.Is(err, ErrInvalidInput))

	var target *InvalidInputError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "table is nil", target.Reason)
	assert.Contains(t, err.Error(), "invalid input")
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "validation failed: step must be positive",
		(&ValidationError{Reason: "step must be positive"}).Error())
	assert.Equal(t, "validation failed for data.xlsx: empty file",
		(&ValidationError{FilePath: "data.xlsx", Reason: "empty file"}).Error())
}

func TestMissingColumnAndFormatErrors(t *testing.T) {
	assert.Equal(t, "missing column for field 'category'", (&MissingColumnError{Field: "category"}).Error())

	err := &InvalidFormatError{FilePath: "a.txt", ExpectedFormat: "xlsx or csv", Msg: "unknown extension"}
	assert.Contains(t, err.Error(), "a.txt")
	assert.Contains(t, err.Error(), "xlsx or csv")
}

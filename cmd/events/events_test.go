package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsCommand_Flags(t *testing.T) {
	assert.Equal(t, "events", Cmd.Use)

	period := Cmd.Flags().Lookup("period")
	require.NotNil(t, period)
	assert.Equal(t, "M", period.DefValue)
	require.NotNil(t, Cmd.Flags().Lookup("date"))
}

func TestEventsCommand_RejectsBadDate(t *testing.T) {
	date = "not a date"
	t.Cleanup(func() { date = "" })
	assert.Error(t, eventsFunc(Cmd, nil))
}

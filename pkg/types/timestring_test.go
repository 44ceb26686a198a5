package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:05", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"24:00", "9:5", "morning", "09:60", ""}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), s)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:05")
	require.NoError(t, err)

	shifted, err := ts.AddMinutes(70)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), shifted)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.True(t, TimeString("17:00").IsAfter("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("13:45").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 13, 45, 0, 0, time.UTC), at)
}

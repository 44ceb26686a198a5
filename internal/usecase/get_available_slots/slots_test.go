package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday

func at(hour, minute int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, minute, 0, 0, time.UTC)
}

func span(fromHour, fromMin, toHour, toMin int) domain.TimeInterval {
	return domain.TimeInterval{Start: at(fromHour, fromMin), End: at(toHour, toMin)}
}

func TestGenerateSlots_BuffersAndGranularity(t *testing.T) {
	windows := []domain.TimeInterval{span(9, 0, 18, 0)}

	// 5 + 60 + 10 = 75-minute footprint, cursor advances by 30
	slots, err := generateSlots(windows, 60, 5, 10, 30, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, at(9, 5), slots[0].Start)
	assert.Equal(t, at(10, 5), slots[0].End)

	assert.Equal(t, at(9, 35), slots[1].Start)
	assert.Equal(t, at(10, 35), slots[1].End)

	// last cursor fitting the footprint before 18:00 is 16:30
	require.Len(t, slots, 16)
	assert.Equal(t, at(16, 35), slots[len(slots)-1].Start)
	assert.Equal(t, at(17, 35), slots[len(slots)-1].End)
}

func TestGenerateSlots_BusyBlocksBufferedSpan(t *testing.T) {
	windows := []domain.TimeInterval{span(9, 0, 18, 0)}
	busy := []domain.TimeInterval{span(10, 0, 11, 0)}

	slots, err := generateSlots(windows, 60, 5, 10, 30, busy)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// cursors 09:00..10:30 all have buffered spans crossing the booking;
	// 11:00 is the first clear cursor
	assert.Equal(t, at(11, 5), slots[0].Start)
	assert.Equal(t, at(12, 5), slots[0].End)
	require.Len(t, slots, 12)
}

func TestGenerateSlots_HalfOpenAdjacencyDoesNotBlock(t *testing.T) {
	windows := []domain.TimeInterval{span(9, 0, 18, 0)}

	// booking starts exactly where the first buffered span ends
	busy := []domain.TimeInterval{span(10, 15, 11, 0)}

	slots, err := generateSlots(windows, 60, 5, 10, 30, busy)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(9, 5), slots[0].Start)
}

func TestGenerateSlots_WindowShorterThanFootprint(t *testing.T) {
	windows := []domain.TimeInterval{span(9, 0, 10, 0)}

	slots, err := generateSlots(windows, 60, 5, 10, 30, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_MultipleWindows(t *testing.T) {
	windows := []domain.TimeInterval{
		span(9, 0, 12, 0),
		span(14, 0, 18, 0),
	}

	slots, err := generateSlots(windows, 60, 0, 0, 60, nil)
	require.NoError(t, err)

	// 09:00, 10:00, 11:00 + 14:00..17:00
	require.Len(t, slots, 7)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(14, 0), slots[3].Start)
}

func TestGenerateSlots_InvalidParams(t *testing.T) {
	windows := []domain.TimeInterval{span(9, 0, 18, 0)}

	_, err := generateSlots(windows, 0, 0, 0, 30, nil)
	assert.Error(t, err)

	_, err = generateSlots(windows, 60, 0, 0, 0, nil)
	assert.Error(t, err)

	_, err = generateSlots(windows, 60, -5, 0, 30, nil)
	assert.Error(t, err)
}

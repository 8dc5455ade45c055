package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "12:00", 30)
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, TimeSlot{StartTime: "09:00", EndTime: "09:30"}, slots[0])
	assert.Equal(t, TimeSlot{StartTime: "11:30", EndTime: "12:00"}, slots[5])
}

func TestGenerateTimeSlotsTilingInvariant(t *testing.T) {
	slots, err := GenerateTimeSlots("08:15", "17:00", 45)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	end, err := TimeToMinutes("17:00")
	require.NoError(t, err)

	prevEnd := -1
	for _, slot := range slots {
		start, err := TimeToMinutes(slot.StartTime)
		require.NoError(t, err)
		stop, err := TimeToMinutes(slot.EndTime)
		require.NoError(t, err)

		// Every slot is exactly the requested duration.
		assert.Equal(t, 45, stop-start)
		// Slots are contiguous and never extend past the window end.
		if prevEnd >= 0 {
			assert.Equal(t, prevEnd, start)
		}
		assert.LessOrEqual(t, stop, end)
		prevEnd = stop
	}
}

func TestGenerateTimeSlotsNoPartialTrailingSlot(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "10:45", 30)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "10:30", slots[2].EndTime)
}

func TestGenerateTimeSlotsDurationExceedsWindow(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "10:00", 90)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlotsRejectsBadInput(t *testing.T) {
	var vErr *ValidationError

	_, err := GenerateTimeSlots("09:00", "12:00", 0)
	require.ErrorAs(t, err, &vErr)

	_, err = GenerateTimeSlots("9:00", "12:00", 30)
	require.ErrorAs(t, err, &vErr)

	_, err = GenerateTimeSlots("09:00", "24:00", 30)
	require.ErrorAs(t, err, &vErr)
}

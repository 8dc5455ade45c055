package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScheduleEntry(t *testing.T) {
	existing := []ScheduleEntry{
		{ID: "e1", DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}

	t.Run("rejects inverted time range", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 2, StartTime: "17:00", EndTime: "09:00",
		}, existing)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects out-of-range day of week", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00",
		}, existing)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "dayOfWeek", vErr.Field)
	})

	t.Run("rejects malformed start time", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 2, StartTime: "9:00", EndTime: "17:00",
		}, existing)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "startTime", vErr.Field)
	})

	t.Run("rejects overlap on same day", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 1, StartTime: "16:00", EndTime: "20:00",
		}, existing)
		var cErr *ConflictError
		require.ErrorAs(t, err, &cErr)
	})

	t.Run("accepts same window on a different day", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00",
		}, existing)
		require.NoError(t, err)
	})

	t.Run("accepts adjacent window on same day", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-1", DayOfWeek: 1, StartTime: "17:00", EndTime: "20:00",
		}, existing)
		require.NoError(t, err)
	})

	t.Run("ignores other doctors", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			DoctorID: "doc-2", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00",
		}, existing)
		require.NoError(t, err)
	})

	t.Run("entry does not conflict with itself on edit", func(t *testing.T) {
		err := ValidateScheduleEntry(ScheduleEntry{
			ID: "e1", DoctorID: "doc-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "16:00",
		}, existing)
		require.NoError(t, err)
	})
}

func TestComputeWeeklyHours(t *testing.T) {
	entries := []ScheduleEntry{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 4, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 6, StartTime: "09:00", EndTime: "13:00", IsAvailable: true},
	}

	assert.Equal(t, 44.0, ComputeWeeklyHours(entries))

	// Marking Saturday unavailable drops its four hours.
	entries[5].IsAvailable = false
	assert.Equal(t, 40.0, ComputeWeeklyHours(entries))
}

func TestComputeWeeklyHoursFractional(t *testing.T) {
	entries := []ScheduleEntry{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:30", IsAvailable: true},
	}
	assert.Equal(t, 0.5, ComputeWeeklyHours(entries))
}

func TestComputeWeeklyHoursEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeWeeklyHours(nil))
}

package scheduling

import "fmt"

// ScheduleEntry is a recurring weekly availability window for one doctor.
// It is a plain value; persistence belongs to the storage layer.
type ScheduleEntry struct {
	ID             string
	DoctorID       string
	OrganizationID string
	DayOfWeek      int // 0 = Sunday ... 6 = Saturday
	StartTime      string
	EndTime        string
	IsAvailable    bool
	Notes          string
}

// ValidateScheduleEntry checks a candidate entry against the doctor's other
// entries. It returns a ValidationError for a malformed entry and a
// ConflictError when the candidate overlaps an existing entry on the same
// day for the same doctor. The candidate's own record (matched by ID) is
// skipped so edits do not conflict with themselves.
func ValidateScheduleEntry(entry ScheduleEntry, existing []ScheduleEntry) error {
	if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
		return NewValidationError("dayOfWeek", fmt.Sprintf("must be between 0 and 6, got %d", entry.DayOfWeek))
	}
	start, err := TimeToMinutes(entry.StartTime)
	if err != nil {
		return NewValidationError("startTime", fmt.Sprintf("%q is not a valid HH:MM time", entry.StartTime))
	}
	end, err := TimeToMinutes(entry.EndTime)
	if err != nil {
		return NewValidationError("endTime", fmt.Sprintf("%q is not a valid HH:MM time", entry.EndTime))
	}
	if start >= end {
		return NewValidationError("startTime", "start time must be before end time")
	}

	for _, other := range existing {
		if other.ID != "" && other.ID == entry.ID {
			continue
		}
		if other.DoctorID != entry.DoctorID || other.DayOfWeek != entry.DayOfWeek {
			continue
		}
		otherStart, err := TimeToMinutes(other.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := TimeToMinutes(other.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(start, end, otherStart, otherEnd) {
			return NewConflictError(fmt.Sprintf(
				"schedule %s-%s overlaps existing entry %s-%s on day %d",
				entry.StartTime, entry.EndTime, other.StartTime, other.EndTime, other.DayOfWeek))
		}
	}
	return nil
}

// ComputeWeeklyHours sums the length of all available entries in hours.
// Entries flagged unavailable contribute zero. A 30-minute entry counts
// as 0.5.
func ComputeWeeklyHours(entries []ScheduleEntry) float64 {
	var totalMinutes int
	for _, entry := range entries {
		if !entry.IsAvailable {
			continue
		}
		start, err := TimeToMinutes(entry.StartTime)
		if err != nil {
			continue
		}
		end, err := TimeToMinutes(entry.EndTime)
		if err != nil {
			continue
		}
		if end > start {
			totalMinutes += end - start
		}
	}
	return float64(totalMinutes) / 60.0
}

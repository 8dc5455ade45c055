package scheduling

// TimeSlot is one fixed-duration sub-interval of a schedule window.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// GenerateTimeSlots tiles [start, end) with consecutive slots of exactly
// durationMinutes each, starting at start. A trailing slot that would not
// fit entirely inside the window is not emitted. When durationMinutes
// exceeds the window length the result is empty.
func GenerateTimeSlots(start, end string, durationMinutes int) ([]TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, NewValidationError("durationMinutes", "must be a positive number of minutes")
	}
	startMin, err := TimeToMinutes(start)
	if err != nil {
		return nil, NewValidationError("startTime", err.Error())
	}
	endMin, err := TimeToMinutes(end)
	if err != nil {
		return nil, NewValidationError("endTime", err.Error())
	}

	slots := make([]TimeSlot, 0)
	for cursor := startMin; cursor+durationMinutes <= endMin; cursor += durationMinutes {
		slots = append(slots, TimeSlot{
			StartTime: MinutesToTime(cursor),
			EndTime:   MinutesToTime(cursor + durationMinutes),
		})
	}
	return slots, nil
}

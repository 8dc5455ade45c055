package scheduling

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used throughout the engine.
const DateLayout = "2006-01-02"

// ValidTime reports whether s is a zero-padded 24-hour HH:MM string.
// Single-digit hours ("9:00") and "24:00" are rejected.
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	// Atoi accepts a leading sign, so every component byte must be a digit.
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// TimeToMinutes converts a HH:MM string to minutes since midnight.
func TimeToMinutes(s string) (int, error) {
	if !ValidTime(s) {
		return 0, NewValidationError("time", fmt.Sprintf("%q is not a valid HH:MM time", s))
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	return hour*60 + minute, nil
}

// MinutesToTime renders minutes since midnight as a zero-padded HH:MM string.
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidTimeRange reports whether start is strictly before end.
// Both arguments must be valid HH:MM strings.
func ValidTimeRange(start, end string) bool {
	s, err := TimeToMinutes(start)
	if err != nil {
		return false
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return false
	}
	return s < e
}

// ParseDate parses a YYYY-MM-DD string into a date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewValidationError("date", fmt.Sprintf("%q is not a valid YYYY-MM-DD date", s))
	}
	return d, nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// overlap. Adjacent intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockPattern matches "14:30", "2:30 pm", "9:00am" and similar forms.
var clockPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?)?`)

// hourPattern matches "a las 3", together with an optional period suffix
// resolved by the surrounding text.
var hourPattern = regexp.MustCompile(`a las (\d{1,2})\b`)

// ParseTimeExpression extracts a time preference from the utterance.
// Explicit clock times are normalized to 24-hour HH:MM: "2:30 pm" becomes
// "14:30", "12:00 am" becomes "00:00". It returns nil when the text
// carries no time information.
func ParseTimeExpression(text string) *TimePreference {
	normalized := normalize(text)

	if m := clockPattern.FindStringSubmatch(normalized); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if minute <= 59 {
			if value, ok := to24Hour(hour, minute, m[3]); ok {
				return &TimePreference{Type: "specific", Value: value, Confidence: 0.95}
			}
		}
	}

	if m := hourPattern.FindStringSubmatch(normalized); m != nil {
		hour, _ := strconv.Atoi(m[1])
		period := ""
		switch {
		case containsAny(normalized, []string{"de la tarde", "de la noche"}):
			period = "pm"
		case containsAny(normalized, []string{"de la mañana", "de la manana"}):
			period = "am"
		}
		if value, ok := to24Hour(hour, 0, period); ok {
			return &TimePreference{Type: "specific", Value: value, Confidence: 0.85}
		}
	}

	if containsAny(normalized, morningContexts) || strings.Contains(normalized, "temprano") {
		return &TimePreference{Type: "morning", Value: "09:00", Confidence: 0.7}
	}

	if containsAny(normalized, []string{"por la tarde", "en la tarde", "de la tarde"}) {
		return &TimePreference{Type: "afternoon", Value: "15:00", Confidence: 0.7}
	}

	if containsAny(normalized, []string{"cualquier hora", "a cualquier hora", "la hora que sea"}) {
		return &TimePreference{Type: "flexible", Value: "", Confidence: 0.5}
	}

	return nil
}

// to24Hour converts an extracted hour/minute plus optional am/pm marker to
// a zero-padded 24-hour HH:MM string. PM adds twelve except for 12 PM;
// 12 AM maps to 00. Without a marker the hour is taken as already being
// on the 24-hour clock.
func to24Hour(hour, minute int, period string) (string, bool) {
	period = strings.ReplaceAll(period, ".", "")
	switch period {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// timePattern is the strict zero-padded 24-hour format accepted by
// ValidTime.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidTime reports whether s is a strictly formatted 24-hour HH:MM
// string. "24:00" and single-digit-hour forms like "9:00" are rejected.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

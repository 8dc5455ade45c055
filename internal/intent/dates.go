package intent

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// morningContexts are phrasings where "mañana" means the time of day,
// not tomorrow.
var morningContexts = []string{"por la mañana", "en la mañana", "de la mañana", "por la manana", "en la manana", "de la manana"}

// weekdayRules is an ordered list; when an utterance names several
// weekdays, the one mentioned first in the text wins.
var weekdayRules = []struct {
	name    string
	weekday time.Weekday
}{
	{"domingo", time.Sunday},
	{"lunes", time.Monday},
	{"martes", time.Tuesday},
	{"miércoles", time.Wednesday},
	{"miercoles", time.Wednesday},
	{"jueves", time.Thursday},
	{"viernes", time.Friday},
	{"sábado", time.Saturday},
	{"sabado", time.Saturday},
}

// ParseRelativeDate extracts a date preference from the utterance. now
// anchors relative references. It returns nil when the text carries no
// date information; that is a valid "nothing found" result, not an error.
func ParseRelativeDate(text string, now time.Time) *DatePreference {
	normalized := normalize(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if strings.Contains(normalized, "pasado mañana") || strings.Contains(normalized, "pasado manana") {
		return &DatePreference{Type: "specific", Value: today.AddDate(0, 0, 2).Format(dateLayout), Confidence: 0.85}
	}

	if tomorrowMentioned(normalized) {
		return &DatePreference{Type: "specific", Value: today.AddDate(0, 0, 1).Format(dateLayout), Confidence: 0.9}
	}

	if strings.Contains(normalized, "hoy") {
		return &DatePreference{Type: "specific", Value: today.Format(dateLayout), Confidence: 0.9}
	}

	// Urgency phrasing reads as "the soonest possible day".
	if containsAny(normalized, []string{"lo antes posible", "cuanto antes", "urgente", "emergencia"}) {
		return &DatePreference{Type: "specific", Value: today.Format(dateLayout), Confidence: 0.8}
	}

	if weekday, ok := firstWeekdayMention(normalized); ok {
		return &DatePreference{Type: "specific", Value: nextWeekday(today, weekday).Format(dateLayout), Confidence: 0.8}
	}

	if containsAny(normalized, []string{"próxima semana", "proxima semana", "semana que viene", "siguiente semana"}) {
		return &DatePreference{Type: "relative", Value: "next_week", Confidence: 0.75}
	}

	if containsAny(normalized, []string{"cuando pueda", "cuando sea", "cualquier día", "cualquier dia", "no tengo preferencia"}) {
		return &DatePreference{Type: "flexible", Value: "", Confidence: 0.6}
	}

	return nil
}

// tomorrowMentioned reports whether "mañana" appears as a day reference
// rather than as the morning period.
func tomorrowMentioned(normalized string) bool {
	if !strings.Contains(normalized, "mañana") && !strings.Contains(normalized, "manana") {
		return false
	}
	for _, context := range morningContexts {
		normalized = strings.ReplaceAll(normalized, context, "")
	}
	return strings.Contains(normalized, "mañana") || strings.Contains(normalized, "manana")
}

// firstWeekdayMention returns the weekday whose name appears earliest in
// the text, so "el lunes o el viernes" resolves to Monday on every call.
func firstWeekdayMention(normalized string) (time.Weekday, bool) {
	best := -1
	var weekday time.Weekday
	for _, rule := range weekdayRules {
		idx := strings.Index(normalized, rule.name)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			weekday = rule.weekday
		}
	}
	return weekday, best >= 0
}

// nextWeekday returns the next occurrence of the weekday strictly after
// today, so "el lunes" on a Monday means next Monday.
func nextWeekday(today time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// ValidDate reports whether s is a real YYYY-MM-DD calendar date that is
// today or later. Past dates are rejected.
func ValidDate(s string, now time.Time) bool {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// Package intent turns free-text Spanish appointment requests into
// structured booking intents using ordered, deterministic keyword rules.
// It performs no I/O and calls no external model; it is the
// pre-classification layer in front of the conversational flow.
package intent

import (
	"strings"
	"time"
)

// Action classifies what the patient wants to do.
type Action string

const (
	ActionBook       Action = "book"
	ActionCancel     Action = "cancel"
	ActionReschedule Action = "reschedule"
	ActionInquire    Action = "inquire"
	ActionUnknown    Action = "unknown"
)

// Urgency is the three-way urgency classification.
type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencyRoutine  Urgency = "routine"
	UrgencyFlexible Urgency = "flexible"
)

// DatePreference is an extracted date constraint.
type DatePreference struct {
	Type       string  `json:"type"` // "specific", "relative" or "flexible"
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// TimePreference is an extracted time-of-day constraint.
type TimePreference struct {
	Type       string  `json:"type"` // "specific", "morning", "afternoon" or "flexible"
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// SpecialtyMatch maps a message onto the clinic's service taxonomy.
type SpecialtyMatch struct {
	Specialty   string  `json:"specialty"`
	ServiceType string  `json:"serviceType"`
	Confidence  float64 `json:"confidence"`
}

// BookingIntent is the structured interpretation of one utterance.
// Absent fields are nil pointers, never empty sentinels.
type BookingIntent struct {
	Action          Action          `json:"intent"`
	Specialty       *SpecialtyMatch `json:"specialty,omitempty"`
	PreferredDate   *DatePreference `json:"preferredDate,omitempty"`
	PreferredTime   *TimePreference `json:"preferredTime,omitempty"`
	Urgency         Urgency         `json:"urgency"`
	PatientConcerns string          `json:"patientConcerns,omitempty"`
	Confidence      float64         `json:"confidence"`
	MissingInfo     []string        `json:"missingInfo"`
}

// action classification rules, checked in order. Reschedule keywords win
// over booking keywords so "cambiar mi cita" is not read as a new booking.
var actionRules = []struct {
	keywords   []string
	action     Action
	confidence float64
}{
	{[]string{"reagendar", "reprogramar", "cambiar mi cita", "cambiar la cita", "mover mi cita"}, ActionReschedule, 0.9},
	{[]string{"cancelar", "anular", "ya no puedo ir"}, ActionCancel, 0.9},
	{[]string{"agendar", "reservar", "sacar una cita", "sacar cita", "quiero una cita", "necesito una cita", "programar una cita", "cita"}, ActionBook, 0.85},
	{[]string{"cuanto cuesta", "cuánto cuesta", "precio", "horario", "informacion", "información", "?"}, ActionInquire, 0.7},
}

// ExtractBookingIntent runs every sub-extractor over the utterance and
// assembles the combined intent. now anchors relative date resolution so
// repeated calls are deterministic.
func ExtractBookingIntent(text string, now time.Time) BookingIntent {
	normalized := normalize(text)

	result := BookingIntent{
		Action:      ActionUnknown,
		Urgency:     ExtractUrgency(text),
		MissingInfo: []string{},
	}

	actionConfidence := 0.2
	for _, rule := range actionRules {
		if containsAny(normalized, rule.keywords) {
			result.Action = rule.action
			actionConfidence = rule.confidence
			break
		}
	}

	result.Specialty = ExtractSpecialty(text)
	result.PreferredDate = ParseRelativeDate(text, now)
	result.PreferredTime = ParseTimeExpression(text)
	result.PatientConcerns = ExtractPatientConcerns(text)

	// A concern with no explicit action keyword still reads as a booking
	// request: patients describe symptoms expecting an appointment.
	if result.Action == ActionUnknown && result.PatientConcerns != "" {
		result.Action = ActionBook
		actionConfidence = 0.6
	}

	confidences := []float64{actionConfidence}
	if result.Specialty != nil {
		confidences = append(confidences, result.Specialty.Confidence)
	}
	if result.PreferredDate != nil {
		confidences = append(confidences, result.PreferredDate.Confidence)
	}
	if result.PreferredTime != nil {
		confidences = append(confidences, result.PreferredTime.Confidence)
	}
	var sum float64
	for _, c := range confidences {
		sum += c
	}
	result.Confidence = sum / float64(len(confidences))

	if result.Action == ActionBook {
		if result.Specialty == nil {
			result.MissingInfo = append(result.MissingInfo, "specialty")
		}
		if result.PreferredDate == nil {
			result.MissingInfo = append(result.MissingInfo, "preferredDate")
		}
		if result.PreferredTime == nil {
			result.MissingInfo = append(result.MissingInfo, "preferredTime")
		}
	}

	return result
}

// normalize lowercases the text so keyword rules match case-insensitively.
// Accented characters are kept; rules carry both spellings where patients
// commonly type without accents.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Package services holds the conversational booking orchestration that
// sits between the chat/WhatsApp surfaces and the two engines.
package services

import (
	"fmt"
	"strings"
	"time"

	"optical-booking-server/internal/intent"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/scheduling"
)

// AvailabilityFinder returns bookable slots for a specialty on a date.
// The gorm-backed implementation lives in finder.go; tests supply stubs.
type AvailabilityFinder interface {
	FindSlots(organizationID, specialty, date string, policy scheduling.BookingPolicy) ([]scheduling.AppointmentSlot, error)
}

// maxSuggestedSlots caps how many options one reply lists.
const maxSuggestedSlots = 5

// Assistant composes deterministic Spanish replies from extracted
// booking intents. It holds no conversation state itself; persisted chat
// history belongs to the handlers.
type Assistant struct {
	Finder AvailabilityFinder
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewAssistant creates an Assistant backed by the given finder.
func NewAssistant(finder AvailabilityFinder) *Assistant {
	return &Assistant{Finder: finder, Now: time.Now}
}

// Reply is the assistant's answer to one patient message.
type Reply struct {
	Text   string                       `json:"text"`
	Intent intent.BookingIntent         `json:"intent"`
	Slots  []scheduling.AppointmentSlot `json:"slots,omitempty"`
}

// Respond interprets one patient message and produces the next reply:
// a follow-up question when booking information is missing, slot
// suggestions when enough is known, or a short answer for non-booking
// intents.
func (a *Assistant) Respond(organizationID string, role models.Role, text string) (Reply, error) {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}

	extracted := intent.ExtractBookingIntent(text, now)
	reply := Reply{Intent: extracted}

	switch extracted.Action {
	case intent.ActionCancel:
		reply.Text = "Entendido, quieres cancelar tu cita. Puedes hacerlo desde la sección \"Mis citas\", o dime la fecha de la cita que deseas cancelar."
		return reply, nil
	case intent.ActionReschedule:
		reply.Text = "Claro, puedo ayudarte a reprogramar tu cita. ¿Para qué fecha te gustaría moverla?"
		return reply, nil
	case intent.ActionInquire:
		reply.Text = "Con gusto te comparto la información. Ofrecemos exámenes visuales completos, adaptación de lentes de contacto, optometría pediátrica y evaluación de baja visión. ¿Te gustaría agendar una cita?"
		return reply, nil
	case intent.ActionUnknown:
		reply.Text = "Hola, soy el asistente de la clínica. Puedo ayudarte a agendar, cambiar o cancelar una cita. ¿Qué necesitas?"
		return reply, nil
	}

	// Booking flow: ask for whatever is still missing, in a fixed order
	// so the dialogue is predictable.
	if extracted.Specialty == nil {
		reply.Text = "¿Qué tipo de consulta necesitas? Por ejemplo: examen visual completo, lentes de contacto o consulta pediátrica."
		return reply, nil
	}
	date, ok := resolveDate(extracted.PreferredDate, now)
	if !ok {
		reply.Text = fmt.Sprintf("Perfecto, una cita de %s. ¿Qué día te gustaría venir?", strings.ToLower(extracted.Specialty.ServiceType))
		return reply, nil
	}

	policy := scheduling.BookingPolicy{
		AllowSameDay: role.IsPrivileged(),
		Now:          now,
	}
	slots, err := a.Finder.FindSlots(organizationID, extracted.Specialty.Specialty, date, policy)
	if err != nil {
		return Reply{}, err
	}

	available := make([]scheduling.AppointmentSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			available = append(available, slot)
		}
	}
	available = preferredSlots(available, extracted.PreferredTime)
	if len(available) > maxSuggestedSlots {
		available = available[:maxSuggestedSlots]
	}

	if len(available) == 0 {
		reply.Text = fmt.Sprintf("Lo siento, no hay horarios disponibles el %s. ¿Quieres intentar con otra fecha?", date)
		return reply, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estos son los horarios disponibles para el %s:\n", date)
	for _, slot := range available {
		fmt.Fprintf(&b, "- %s con %s\n", slot.StartTime, slot.DoctorName)
	}
	b.WriteString("¿Cuál prefieres?")

	reply.Text = b.String()
	reply.Slots = available
	return reply, nil
}

// preferredSlots narrows the suggestions to the patient's time-of-day
// preference: morning keeps slots before noon, afternoon from noon on,
// and a specific time keeps slots at or after it. When nothing survives
// the filter the full list is returned, so a preference never turns real
// availability into "no slots".
func preferredSlots(slots []scheduling.AppointmentSlot, pref *intent.TimePreference) []scheduling.AppointmentSlot {
	if pref == nil || pref.Type == "flexible" {
		return slots
	}

	keep := func(startTime string) bool {
		switch pref.Type {
		case "morning":
			return startTime < "12:00"
		case "afternoon":
			return startTime >= "12:00"
		case "specific":
			return startTime >= pref.Value
		}
		return true
	}

	filtered := make([]scheduling.AppointmentSlot, 0, len(slots))
	for _, slot := range slots {
		if keep(slot.StartTime) {
			filtered = append(filtered, slot)
		}
	}
	if len(filtered) == 0 {
		return slots
	}
	return filtered
}

// resolveDate turns a date preference into a concrete YYYY-MM-DD date.
// Flexible preferences and missing dates resolve to nothing; the caller
// asks a follow-up instead of guessing.
func resolveDate(pref *intent.DatePreference, now time.Time) (string, bool) {
	if pref == nil || pref.Type == "flexible" {
		return "", false
	}
	if pref.Type == "relative" && pref.Value == "next_week" {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return today.AddDate(0, 0, 7).Format(scheduling.DateLayout), true
	}
	if intent.ValidDate(pref.Value, now) {
		return pref.Value, true
	}
	return "", false
}

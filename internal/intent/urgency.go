package intent

var urgentKeywords = []string{
	"urgente", "urgencia", "emergencia", "dolor", "lo antes posible",
	"cuanto antes", "no veo", "perdí la visión", "perdi la vision",
	"me golpeé el ojo", "me golpee el ojo",
}

var flexibleKeywords = []string{
	"no hay prisa", "sin prisa", "no es urgente", "cuando pueda",
	"cuando sea", "cualquier día", "cualquier dia", "con calma",
}

// ExtractUrgency classifies the utterance as urgent, flexible or routine.
// Urgent keywords are checked first: a message matching both sets
// resolves to urgent.
func ExtractUrgency(text string) Urgency {
	normalized := normalize(text)
	if containsAny(normalized, urgentKeywords) {
		return UrgencyUrgent
	}
	if containsAny(normalized, flexibleKeywords) {
		return UrgencyFlexible
	}
	return UrgencyRoutine
}

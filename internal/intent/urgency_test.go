package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUrgency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Urgency
	}{
		{"eye pain", "tengo dolor de ojos", UrgencyUrgent},
		{"explicit urgency", "es urgente, necesito una cita", UrgencyUrgent},
		{"asap", "lo antes posible por favor", UrgencyUrgent},
		{"vision loss", "no veo bien del ojo izquierdo", UrgencyUrgent},
		{"no rush", "no hay prisa, cuando pueda", UrgencyFlexible},
		{"any day", "cualquier día me viene bien", UrgencyFlexible},
		{"default routine", "quiero agendar un examen de la vista", UrgencyRoutine},
		{"empty", "", UrgencyRoutine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUrgency(tt.text))
		})
	}
}

func TestExtractUrgencyUrgentWinsOverFlexible(t *testing.T) {
	// Matching both keyword sets resolves to urgent.
	assert.Equal(t, UrgencyUrgent, ExtractUrgency("tengo dolor pero no hay prisa"))
}

func TestExtractPatientConcerns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"headache", "tengo dolor de cabeza constante", "Dolor de cabeza"},
		{"blurry vision", "veo borroso de lejos", "Visión borrosa"},
		{"eye pain", "me duelen los ojos al leer", "Dolor ocular"},
		{"dry eye", "siento resequedad en los ojos", "Ojo seco"},
		{"floaters", "veo moscas volantes", "Manchas o moscas volantes"},
		{"loose fallback", "tengo problemas para ver de lejos", "problemas para ver de lejos"},
		{"nothing", "quiero agendar una cita", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPatientConcerns(tt.text))
		})
	}
}

package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed reference clock: Monday 2025-06-02.
var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func TestExtractBookingIntentFullRequest(t *testing.T) {
	got := ExtractBookingIntent("Quiero agendar un examen completo de la vista para mañana a las 2:30 pm", testNow)

	assert.Equal(t, ActionBook, got.Action)
	require.NotNil(t, got.Specialty)
	assert.Equal(t, "Optometría Clínica", got.Specialty.Specialty)
	require.NotNil(t, got.PreferredDate)
	assert.Equal(t, "specific", got.PreferredDate.Type)
	assert.Equal(t, "2025-06-03", got.PreferredDate.Value)
	require.NotNil(t, got.PreferredTime)
	assert.Equal(t, "14:30", got.PreferredTime.Value)
	assert.Equal(t, UrgencyRoutine, got.Urgency)
	assert.Empty(t, got.MissingInfo)
	assert.Greater(t, got.Confidence, 0.8)
}

func TestExtractBookingIntentMissingInfo(t *testing.T) {
	got := ExtractBookingIntent("quiero una cita", testNow)

	assert.Equal(t, ActionBook, got.Action)
	assert.Nil(t, got.PreferredDate)
	assert.Nil(t, got.PreferredTime)
	assert.Contains(t, got.MissingInfo, "preferredDate")
	assert.Contains(t, got.MissingInfo, "preferredTime")
}

func TestExtractBookingIntentActions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Action
	}{
		{"book", "necesito una cita con el oculista", ActionBook},
		{"cancel", "quiero cancelar mi cita del jueves", ActionCancel},
		{"reschedule wins over book", "necesito cambiar mi cita para otro día", ActionReschedule},
		{"inquire", "¿cuánto cuesta el examen de la vista?", ActionInquire},
		{"unknown", "hola buenas tardes", ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBookingIntent(tt.text, testNow)
			assert.Equal(t, tt.want, got.Action)
		})
	}
}

func TestExtractBookingIntentConcernImpliesBooking(t *testing.T) {
	got := ExtractBookingIntent("tengo visión borrosa desde hace unos días", testNow)
	assert.Equal(t, ActionBook, got.Action)
	assert.Equal(t, "Visión borrosa", got.PatientConcerns)
}

func TestExtractBookingIntentDeterminism(t *testing.T) {
	text := "Me duelen los ojos, necesito una cita urgente mañana por la mañana"
	first := ExtractBookingIntent(text, testNow)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractBookingIntent(text, testNow))
	}
}

package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelativeDate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantType  string
		wantValue string
	}{
		{"tomorrow", "quiero una cita mañana", "specific", "2025-06-03"},
		{"day after tomorrow", "puedo pasado mañana", "specific", "2025-06-04"},
		{"today", "necesito ir hoy", "specific", "2025-06-02"},
		{"as soon as possible", "lo antes posible por favor", "specific", "2025-06-02"},
		{"next week", "la próxima semana me queda bien", "relative", "next_week"},
		{"weekday", "el viernes puedo", "specific", "2025-06-06"},
		{"same weekday rolls a week", "el lunes me viene bien", "specific", "2025-06-09"},
		{"flexible", "cuando pueda el doctor", "flexible", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRelativeDate(tt.text, testNow)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestParseRelativeDateFirstWeekdayWins(t *testing.T) {
	// testNow is Monday 2025-06-02; several weekdays in one utterance
	// resolve to the first one mentioned, on every call.
	for i := 0; i < 50; i++ {
		got := ParseRelativeDate("puedo el lunes o el martes o el viernes", testNow)
		require.NotNil(t, got)
		assert.Equal(t, "specific", got.Type)
		assert.Equal(t, "2025-06-09", got.Value)
	}

	got := ParseRelativeDate("el viernes o si no el lunes", testNow)
	require.NotNil(t, got)
	assert.Equal(t, "2025-06-06", got.Value)
}

func TestParseRelativeDateConfidence(t *testing.T) {
	tomorrow := ParseRelativeDate("mañana", testNow)
	require.NotNil(t, tomorrow)
	assert.GreaterOrEqual(t, tomorrow.Confidence, 0.8)

	flexible := ParseRelativeDate("cuando pueda", testNow)
	require.NotNil(t, flexible)
	assert.Less(t, flexible.Confidence, 0.7)

	relative := ParseRelativeDate("la próxima semana", testNow)
	require.NotNil(t, relative)
	assert.Less(t, relative.Confidence, tomorrow.Confidence)
}

func TestParseRelativeDateNoDateInformation(t *testing.T) {
	assert.Nil(t, ParseRelativeDate("quiero información de precios", testNow))
	// "mañana" in a morning context is a time of day, not tomorrow.
	assert.Nil(t, ParseRelativeDate("prefiero por la mañana", testNow))
}

func TestValidDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	assert.True(t, ValidDate("2025-06-02", now), "today is valid")
	assert.True(t, ValidDate("2025-12-31", now))
	assert.False(t, ValidDate("2020-01-01", now), "past dates are rejected")
	assert.False(t, ValidDate("2025-02-30", now), "impossible calendar date")
	assert.False(t, ValidDate("02/06/2025", now))
	assert.False(t, ValidDate("", now))
}

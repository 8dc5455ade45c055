package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeExpression(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantType  string
		wantValue string
	}{
		{"24-hour clock", "puedo a las 14:30", "specific", "14:30"},
		{"pm converted", "mejor a las 2:30 pm", "specific", "14:30"},
		{"pm with dots", "a las 4:00 p.m. estaría bien", "specific", "16:00"},
		{"noon stays twelve", "12:00 pm me sirve", "specific", "12:00"},
		{"midnight", "12:00 am", "specific", "00:00"},
		{"am kept", "a las 9:15 am", "specific", "09:15"},
		{"bare hour with afternoon context", "a las 4 de la tarde", "specific", "16:00"},
		{"bare hour with morning context", "a las 9 de la mañana", "specific", "09:00"},
		{"morning period", "prefiero en la mañana", "morning", "09:00"},
		{"afternoon period", "mejor por la tarde", "afternoon", "15:00"},
		{"flexible", "a cualquier hora está bien", "flexible", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimeExpression(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestParseTimeExpressionConfidence(t *testing.T) {
	specific := ParseTimeExpression("a las 14:30")
	require.NotNil(t, specific)
	assert.GreaterOrEqual(t, specific.Confidence, 0.9)

	period := ParseTimeExpression("por la tarde")
	require.NotNil(t, period)
	assert.Less(t, period.Confidence, specific.Confidence)
}

func TestParseTimeExpressionNoTimeInformation(t *testing.T) {
	assert.Nil(t, ParseTimeExpression("quiero una cita con el oculista"))
	assert.Nil(t, ParseTimeExpression(""))
}

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"14:60", false},
		{"14.30", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTime(tt.input))
		})
	}
}

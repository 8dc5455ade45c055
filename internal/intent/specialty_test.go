package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpecialty(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantService string
	}{
		{"contact lenses", "quiero una adaptación de lentes de contacto", "Adaptación de Lentes de Contacto"},
		{"contact lenses beat general lenses", "necesito lentes de contacto nuevos", "Adaptación de Lentes de Contacto"},
		{"pediatric", "una cita para mi hijo de 6 años", "Examen Visual Pediátrico"},
		{"low vision", "evaluación de baja visión para mi abuela", "Evaluación de Baja Visión"},
		{"full exam", "quiero un examen completo de la vista", "Examen Visual Completo"},
		{"general", "necesito ver al oculista", "Consulta General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSpecialty(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantService, got.ServiceType)
			assert.GreaterOrEqual(t, got.Confidence, 0.7)
		})
	}
}

func TestExtractSpecialtyGenericConsultaScoresLower(t *testing.T) {
	got := ExtractSpecialty("quisiera una consulta")
	require.NotNil(t, got)
	assert.Equal(t, "Consulta General", got.ServiceType)
	assert.Less(t, got.Confidence, 0.8)
}

func TestExtractSpecialtyIgnoresUnrelatedText(t *testing.T) {
	assert.Nil(t, ExtractSpecialty("quiero comprar zapatos"))
	assert.Nil(t, ExtractSpecialty("hola, ¿cómo están?"))
	assert.Nil(t, ExtractSpecialty(""))
}

func TestExtractSpecialtyDeterminism(t *testing.T) {
	text := "examen de la vista para mi hija"
	first := ExtractSpecialty(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractSpecialty(text))
	}
}

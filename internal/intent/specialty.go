package intent

// specialtyRules map keyword sets onto the clinic's service taxonomy.
// Rules are evaluated in order: the more specific services come first so
// "lentes de contacto" is not swallowed by the general "lentes" match.
var specialtyRules = []struct {
	keywords []string
	match    SpecialtyMatch
}{
	{
		keywords: []string{"lentes de contacto", "lentillas", "pupilentes", "adaptación de lentes", "adaptacion de lentes"},
		match:    SpecialtyMatch{Specialty: "Optometría", ServiceType: "Adaptación de Lentes de Contacto", Confidence: 0.9},
	},
	{
		keywords: []string{"niño", "niña", "nino", "nina", "mi hijo", "mi hija", "pediátric", "pediatric", "infantil", "bebé", "bebe"},
		match:    SpecialtyMatch{Specialty: "Optometría Pediátrica", ServiceType: "Examen Visual Pediátrico", Confidence: 0.9},
	},
	{
		keywords: []string{"baja visión", "baja vision", "visión reducida", "vision reducida", "ayudas visuales"},
		match:    SpecialtyMatch{Specialty: "Optometría", ServiceType: "Evaluación de Baja Visión", Confidence: 0.9},
	},
	{
		keywords: []string{"examen completo", "examen de la vista", "examen visual", "revisión completa", "revision completa", "chequeo de la vista", "graduación", "graduacion"},
		match:    SpecialtyMatch{Specialty: "Optometría Clínica", ServiceType: "Examen Visual Completo", Confidence: 0.85},
	},
	{
		keywords: []string{"optometr", "oculista", "oftalm", "la vista", "los ojos", "mis ojos", "gafas", "lentes", "anteojos"},
		match:    SpecialtyMatch{Specialty: "Optometría", ServiceType: "Consulta General", Confidence: 0.8},
	},
	// Bare "consulta" is only weak evidence of an eyecare request.
	{
		keywords: []string{"consulta"},
		match:    SpecialtyMatch{Specialty: "Optometría", ServiceType: "Consulta General", Confidence: 0.7},
	},
}

// ExtractSpecialty maps the utterance onto the clinic's specialty
// taxonomy. It returns nil when no eyecare keyword appears, meaning the
// message is not domain-relevant; that is not an error.
func ExtractSpecialty(text string) *SpecialtyMatch {
	normalized := normalize(text)
	for _, rule := range specialtyRules {
		if containsAny(normalized, rule.keywords) {
			match := rule.match
			return &match
		}
	}
	return nil
}

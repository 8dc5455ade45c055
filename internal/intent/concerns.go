package intent

import "regexp"

// concernRules map common complaint phrasings to canonical concern
// labels, in order of specificity.
var concernRules = []struct {
	keywords []string
	label    string
}{
	{[]string{"dolor de cabeza", "me duele la cabeza", "cefalea"}, "Dolor de cabeza"},
	{[]string{"visión borrosa", "vision borrosa", "veo borroso", "borroso"}, "Visión borrosa"},
	{[]string{"dolor de ojos", "me duelen los ojos", "dolor en el ojo", "dolor ocular"}, "Dolor ocular"},
	{[]string{"ojos rojos", "ojo rojo", "irritados"}, "Ojos rojos o irritados"},
	{[]string{"ojo seco", "ojos secos", "resequedad"}, "Ojo seco"},
	{[]string{"picazón", "picazon", "comezón", "comezon", "me pican los ojos"}, "Picazón en los ojos"},
	{[]string{"veo doble", "visión doble", "vision doble"}, "Visión doble"},
	{[]string{"manchas", "moscas volantes", "puntos negros"}, "Manchas o moscas volantes"},
}

// loosePattern captures free-form complaints like "problemas para ver de
// lejos" verbatim when no canonical label matches.
var loosePattern = regexp.MustCompile(`problemas? para ver [a-záéíóúñ ]+`)

// ExtractPatientConcerns maps the utterance to a canonical complaint
// label, falling back to a verbatim capture of loose "problemas para
// ver ..." phrasing. It returns the empty string when nothing matches.
func ExtractPatientConcerns(text string) string {
	normalized := normalize(text)
	for _, rule := range concernRules {
		if containsAny(normalized, rule.keywords) {
			return rule.label
		}
	}
	if m := loosePattern.FindString(normalized); m != "" {
		return m
	}
	return ""
}

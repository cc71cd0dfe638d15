package assistant

import "strings"

// SafetyReply es la respuesta fija del guardrail. Se devuelve verbatim y se
// persiste tal cual como turno del asistente.
const SafetyReply = "This could be serious. Please contact your veterinarian immediately. I’m not a substitute for professional veterinary advice."

// Set amplio de urgencia médica. Ojo: por sí solo no gatea nada; solo el
// subset de escalación dispara el corte. Se mantiene así a propósito (la
// primera etapa quedó pensada para avisos suaves que nunca se implementaron).
var medicalKeywords = []string{
	"emergency", "bleeding", "vomiting", "seizure", "unconscious", "poison",
	"toxic", "difficulty breathing", "broken bone", "choking", "dosage",
	"medication", "medicine", "illness", "sick", "severe",
}

var escalationKeywords = []string{"emergency", "severe", "dosage"}

// isMedicalEmergency decide si el mensaje saltea al proveedor y responde
// con SafetyReply. Matching por substring sobre el mensaje en minúsculas.
func isMedicalEmergency(message string) bool {
	lower := strings.ToLower(message)

	medical := false
	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			medical = true
			break
		}
	}
	if !medical {
		return false
	}

	for _, kw := range escalationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

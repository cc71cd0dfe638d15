package assistant

import (
	"context"
	"fmt"
	"strings"

	"petvault/internal/domain/profiles"
)

// Placeholders fijos cuando una sub-consulta viene vacía. Se incluyen igual
// en el bloque para que el modelo sepa que el dato no existe (en vez de
// omitir la sección).
const (
	noWeightLogs = "No weight logs found"
	noSymptoms   = "No recent symptoms recorded"
	noReminders  = "No upcoming reminders"
	noDocuments  = "No documents uploaded"
)

const (
	contextWeightLimit   = 5
	contextSymptomLimit  = 3
	contextReminderLimit = 5
	contextDocumentLimit = 5
)

// buildPlanContext arma el bloque de plan que se inyecta al system prompt.
func buildPlanContext(plan profiles.PlanType) string {
	return fmt.Sprintf(`
User Plan: %s
Basic Plan: 1 pet, 15 document uploads, in-app reminders.
Pro Plan: Unlimited pets, unlimited document uploads, email/recurring reminders, PDF exports, list/grid vault.`,
		strings.ToUpper(string(plan)))
}

// buildPetContext arma el contexto de mascotas del usuario.
// - Si el plan es pro, incluye un resumen de todas las mascotas.
// - Si hay petID, incluye atributos + últimos pesos/síntomas/recordatorios/documentos.
// Cualquier sub-consulta que falle degrada en silencio a su placeholder;
// el turno sigue best-effort.
func (s *Service) buildPetContext(ctx context.Context, userID, petID string, isPro bool) string {
	var b strings.Builder

	if isPro {
		allPets, err := s.pets.ListByOwner(ctx, userID)
		if err == nil && len(allPets) > 0 {
			summaries := make([]string, 0, len(allPets))
			for _, p := range allPets {
				age := "?"
				if p.Age != nil {
					age = fmt.Sprintf("%d", *p.Age)
				}
				summaries = append(summaries, fmt.Sprintf("%s (%s, %sy)", p.Name, orUnknown(p.Breed), age))
			}
			b.WriteString("\nUser's Pets: " + strings.Join(summaries, ", "))
		}
	}

	if petID == "" {
		return b.String()
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil || pet.OwnerUserID != userID {
		// Mascota inexistente o ajena: no es error, simplemente no hay contexto.
		return b.String()
	}

	weightLogs := noWeightLogs
	if weights, err := s.timeline.RecentWeights(ctx, petID, contextWeightLimit); err == nil && len(weights) > 0 {
		parts := make([]string, 0, len(weights))
		for _, e := range weights {
			v := "?"
			if e.Metadata.WeightValue != nil {
				v = trimFloat(*e.Metadata.WeightValue)
			}
			parts = append(parts, fmt.Sprintf("%s: %skg", e.Date.Format("2006-01-02"), v))
		}
		weightLogs = strings.Join(parts, ", ")
	}

	symptomLogs := noSymptoms
	if symptoms, err := s.timeline.RecentSymptoms(ctx, petID, contextSymptomLimit); err == nil && len(symptoms) > 0 {
		parts := make([]string, 0, len(symptoms))
		for _, e := range symptoms {
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", e.Date.Format("2006-01-02"), e.Title, e.Description))
		}
		symptomLogs = strings.Join(parts, ", ")
	}

	reminderLogs := noReminders
	if rems, err := s.reminders.Pending(ctx, petID, contextReminderLimit); err == nil && len(rems) > 0 {
		parts := make([]string, 0, len(rems))
		for _, rem := range rems {
			parts = append(parts, fmt.Sprintf("%s: %s", rem.Date.Format("2006-01-02"), rem.Title))
		}
		reminderLogs = strings.Join(parts, ", ")
	}

	fileLogs := noDocuments
	if docs, err := s.vault.Recent(ctx, petID, contextDocumentLimit); err == nil && len(docs) > 0 {
		parts := make([]string, 0, len(docs))
		for _, d := range docs {
			parts = append(parts, fmt.Sprintf("%s (%s)", d.FileName, d.FileType))
		}
		fileLogs = strings.Join(parts, ", ")
	}

	age := "Unknown"
	if pet.Age != nil {
		age = fmt.Sprintf("%d", *pet.Age)
	}
	weight := "Unknown"
	if pet.WeightKg != nil {
		weight = trimFloat(*pet.WeightKg)
	}

	fmt.Fprintf(&b, `

Active Pet Context (%s):
Breed: %s
Age: %s years
Current Weight: %s kg
Recent Weight Logs: %s
Recent Symptoms: %s
Upcoming Reminders: %s
Recent Documents: %s`,
		pet.Name, orUnknown(pet.Breed), age, weight,
		weightLogs, symptomLogs, reminderLogs, fileLogs)

	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// trimFloat formatea sin ceros de cola: 12.50 => "12.5", 8.00 => "8".
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

package pets

import "time"

// Pet representa el perfil básico de una mascota registrada en el sistema.
// Age/WeightKg son opcionales (el onboarding no los exige).
type Pet struct {
	ID          string
	OwnerUserID string

	Name   string
	Breed  string
	Gender string // male, female, unknown

	Age      *int     // años
	WeightKg *float64 // peso actual en kg

	PhotoURL    string
	MicrochipID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

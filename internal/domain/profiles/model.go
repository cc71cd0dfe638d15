package profiles

import "time"

// PlanType define el nivel de suscripción.
// @Enum basic, pro
type PlanType string

const (
	PlanBasic PlanType = "basic"
	PlanPro   PlanType = "pro"
)

// Profile es el perfil de cuenta de un usuario autenticado.
// Se crea lazy la primera vez que el usuario lo consulta.
type Profile struct {
	UserID string

	PlanType           PlanType
	SubscriptionStatus string // inactive, active

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Límites por plan. Cero significa sin límite.
func (p PlanType) MaxPets() int {
	if p == PlanPro {
		return 0
	}
	return 1
}

func (p PlanType) MaxDocuments() int {
	if p == PlanPro {
		return 0
	}
	return 15
}

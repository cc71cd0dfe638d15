package reminders

import "time"

// Status define el ciclo de vida de un recordatorio.
// @Enum pending, done
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// RecurringInterval define cada cuánto se re-arma un recordatorio recurrente.
type RecurringInterval string

const (
	IntervalYearly RecurringInterval = "yearly"
)

// Reminder es un recordatorio de salud asociado a una mascota
// (refuerzo de vacuna, control veterinario, etc.).
type Reminder struct {
	ID     string
	UserID string
	PetID  string

	Title string
	Date  time.Time
	Type  string // vaccine, vet_visit, medication, other

	Status Status

	Recurring         bool
	RecurringInterval RecurringInterval // solo si Recurring

	CreatedAt time.Time
	UpdatedAt time.Time
}

package reminders

import "context"

type Repository interface {
	Create(ctx context.Context, rem Reminder) error
	Update(ctx context.Context, rem Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	// ListByPet devuelve recordatorios ordenados por fecha ascendente.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Reminder, error)
}

type ListFilter struct {
	Status Status // vacío = todos
	Limit  int    // 0 = sin límite
}

package timeline

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	// ListByPet devuelve entradas ordenadas por fecha descendente.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}

type ListFilter struct {
	Category Category // vacío = todas
	Limit    int      // 0 = sin límite
}

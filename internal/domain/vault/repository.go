package vault

import "context"

type Repository interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	Delete(ctx context.Context, id string) error
	// ListByPet devuelve documentos ordenados por fecha de subida descendente.
	ListByPet(ctx context.Context, petID string, limit int) ([]Document, error)
	ListByEntry(ctx context.Context, entryID string) ([]Document, error)
	CountByPets(ctx context.Context, petIDs []string) (int, error)
}

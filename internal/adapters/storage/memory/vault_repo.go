package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petvault/internal/domain/vault"
)

type vaultRepo struct {
	mu   sync.RWMutex
	byID map[string]vault.Document
}

func NewVaultRepo() vault.Repository {
	return &vaultRepo{
		byID: make(map[string]vault.Document),
	}
}

func (r *vaultRepo) Create(ctx context.Context, d vault.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("document id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("document already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *vaultRepo) GetByID(ctx context.Context, id string) (vault.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return vault.Document{}, ErrNotFound
	}
	return d, nil
}

func (r *vaultRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *vaultRepo) ListByPet(ctx context.Context, petID string, limit int) ([]vault.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vault.Document, 0)
	for _, d := range r.byID {
		if d.PetID == petID {
			out = append(out, d)
		}
	}

	// Más nuevos primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *vaultRepo) ListByEntry(ctx context.Context, entryID string) ([]vault.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vault.Document, 0)
	for _, d := range r.byID {
		if d.EntryID == entryID {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out, nil
}

func (r *vaultRepo) CountByPets(ctx context.Context, petIDs []string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		ids[id] = struct{}{}
	}

	count := 0
	for _, d := range r.byID {
		if _, ok := ids[d.PetID]; ok {
			count++
		}
	}
	return count, nil
}

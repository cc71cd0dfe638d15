package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petvault/internal/domain/timeline"
)

type timelineRepo struct {
	mu   sync.RWMutex
	byID map[string]timeline.Entry
}

func NewTimelineRepo() timeline.Repository {
	return &timelineRepo{
		byID: make(map[string]timeline.Entry),
	}
}

func (r *timelineRepo) Create(ctx context.Context, e timeline.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *timelineRepo) GetByID(ctx context.Context, id string) (timeline.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return timeline.Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *timelineRepo) ListByPet(ctx context.Context, petID string, filter timeline.ListFilter) ([]timeline.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]timeline.Entry, 0)
	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}

	// Más nuevas primero; desempate por created_at para orden estable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *timelineRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

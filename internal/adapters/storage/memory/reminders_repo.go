package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petvault/internal/domain/reminders"
)

type remindersRepo struct {
	mu   sync.RWMutex
	byID map[string]reminders.Reminder
}

func NewRemindersRepo() reminders.Repository {
	return &remindersRepo{
		byID: make(map[string]reminders.Reminder),
	}
}

func (r *remindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rem.ID) == "" {
		return errors.New("reminder id required")
	}
	if _, exists := r.byID[rem.ID]; exists {
		return errors.New("reminder already exists")
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *remindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rem.ID]; !exists {
		return ErrNotFound
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *remindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rem, ok := r.byID[id]
	if !ok {
		return reminders.Reminder{}, ErrNotFound
	}
	return rem, nil
}

func (r *remindersRepo) ListByPet(ctx context.Context, petID string, filter reminders.ListFilter) ([]reminders.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.byID {
		if rem.PetID != petID {
			continue
		}
		if filter.Status != "" && rem.Status != filter.Status {
			continue
		}
		out = append(out, rem)
	}

	// Próximos primero (fecha ascendente)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

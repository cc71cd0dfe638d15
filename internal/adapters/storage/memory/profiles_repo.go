package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petvault/internal/domain/profiles"
)

type profilesRepo struct {
	mu       sync.RWMutex
	byUserID map[string]profiles.Profile
}

func NewProfilesRepo() profiles.Repository {
	return &profilesRepo{
		byUserID: make(map[string]profiles.Profile),
	}
}

func (r *profilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("profile user id required")
	}
	if _, exists := r.byUserID[p.UserID]; exists {
		return errors.New("profile already exists")
	}
	r.byUserID[p.UserID] = p
	return nil
}

func (r *profilesRepo) GetByUserID(ctx context.Context, userID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return profiles.Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *profilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUserID[p.UserID]; !exists {
		return ErrNotFound
	}
	r.byUserID[p.UserID] = p
	return nil
}

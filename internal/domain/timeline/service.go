package timeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("entry not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Category    Category
	Title       string
	Description string
	Date        time.Time
	Metadata    Metadata
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Entry, error) {
	if strings.TrimSpace(petID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if !ValidCategory(in.Category) {
		return Entry{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Entry{}, ErrInvalidInput
	}
	// Una entrada de peso sin valor no aporta nada al historial ni al asistente.
	if in.Category == CategoryWeight {
		if in.Metadata.WeightValue == nil || *in.Metadata.WeightValue <= 0 {
			return Entry{}, ErrInvalidInput
		}
	}

	now := s.now()
	e := Entry{
		ID:          uuid.NewString(),
		PetID:       petID,
		Category:    in.Category,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Metadata:    in.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// RecentWeights devuelve las últimas mediciones de peso (más nuevas primero).
func (s *Service) RecentWeights(ctx context.Context, petID string, limit int) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID, ListFilter{Category: CategoryWeight, Limit: limit})
}

// RecentSymptoms devuelve las últimas entradas de enfermedad (más nuevas primero).
func (s *Service) RecentSymptoms(ctx context.Context, petID string, limit int) ([]Entry, error) {
	return s.repo.ListByPet(ctx, petID, ListFilter{Category: CategoryIllness, Limit: limit})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrPlanLimit    = errors.New("plan limit reached")
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
	Name        string
	Breed       string
	Gender      string
	Age         *int
	WeightKg    *float64
	PhotoURL    string
	MicrochipID string
}

// Create registra una mascota. maxPets > 0 limita según plan (basic = 1).
func (s *Service) Create(ctx context.Context, ownerUserID string, maxPets int, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return Pet{}, ErrInvalidInput
	}

	if maxPets > 0 {
		count, err := s.repo.CountByOwner(ctx, ownerUserID)
		if err != nil {
			return Pet{}, err
		}
		if count >= maxPets {
			return Pet{}, ErrPlanLimit
		}
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      strings.TrimSpace(in.Gender),
		Age:         in.Age,
		WeightKg:    in.WeightKg,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		MicrochipID: strings.TrimSpace(in.MicrochipID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Breed       *string
	Gender      *string
	Age         *int
	WeightKg    *float64
	PhotoURL    *string
	MicrochipID *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		p.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = in.Age
	}
	if in.WeightKg != nil {
		if *in.WeightKg <= 0 {
			return Pet{}, ErrInvalidInput
		}
		p.WeightKg = in.WeightKg
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.MicrochipID != nil {
		p.MicrochipID = strings.TrimSpace(*in.MicrochipID)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
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
	Title     string
	Date      time.Time
	Type      string
	Recurring bool
}

func (s *Service) Create(ctx context.Context, userID, petID string, in CreateInput) (Reminder, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(petID) == "" {
		return Reminder{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Reminder{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Reminder{}, ErrInvalidInput
	}

	now := s.now()
	rem := Reminder{
		ID:        uuid.NewString(),
		UserID:    userID,
		PetID:     petID,
		Title:     strings.TrimSpace(in.Title),
		Date:      in.Date,
		Type:      strings.TrimSpace(in.Type),
		Status:    StatusPending,
		Recurring: in.Recurring,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rem.Recurring {
		rem.RecurringInterval = IntervalYearly
	}

	if err := s.repo.Create(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Reminder, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// Pending devuelve los próximos recordatorios pendientes (fecha ascendente).
func (s *Service) Pending(ctx context.Context, petID string, limit int) ([]Reminder, error) {
	return s.repo.ListByPet(ctx, petID, ListFilter{Status: StatusPending, Limit: limit})
}

// Complete marca el recordatorio como hecho. Si es recurrente, en vez de
// cerrarse se re-arma un intervalo más adelante (sigue pending).
func (s *Service) Complete(ctx context.Context, id string) (Reminder, error) {
	rem, err := s.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}

	if rem.Recurring {
		switch rem.RecurringInterval {
		case IntervalYearly:
			rem.Date = rem.Date.AddDate(1, 0, 0)
		default:
			rem.Date = rem.Date.AddDate(1, 0, 0)
		}
	} else {
		rem.Status = StatusDone
	}
	rem.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
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

// GetOrCreate devuelve el perfil del usuario, creándolo en basic si no existe
// (fallback para cuentas previas al trigger de signup).
func (s *Service) GetOrCreate(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}

	now := s.now()
	p = Profile{
		UserID:             userID,
		PlanType:           PlanBasic,
		SubscriptionStatus: "inactive",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Upgrade pasa el plan a pro. Idempotente.
func (s *Service) Upgrade(ctx context.Context, userID string) (Profile, error) {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if p.PlanType == PlanPro {
		return p, nil
	}

	p.PlanType = PlanPro
	p.SubscriptionStatus = "active"
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// PlanOf devuelve el plan del usuario; en error degrada a basic.
// Lo usan otros módulos para gating, donde fallar cerrado (basic) es lo seguro.
func (s *Service) PlanOf(ctx context.Context, userID string) PlanType {
	p, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return PlanBasic
	}
	return p.PlanType
}

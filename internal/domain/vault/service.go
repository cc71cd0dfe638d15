package vault

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("document not found")
	ErrPlanLimit    = errors.New("document limit reached")
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

type AddInput struct {
	FileURL  string
	FileType string
	FileName string
	FileSize int64
}

// Add registra la metadata de un archivo ya subido al storage.
// maxDocs > 0 limita el total de documentos del dueño (plan basic = 15);
// ownerPetIDs son las mascotas del dueño, para contar ese total.
func (s *Service) Add(ctx context.Context, entryID, petID string, maxDocs int, ownerPetIDs []string, in AddInput) (Document, error) {
	if strings.TrimSpace(entryID) == "" || strings.TrimSpace(petID) == "" {
		return Document{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FileURL) == "" || strings.TrimSpace(in.FileName) == "" {
		return Document{}, ErrInvalidInput
	}
	if in.FileSize < 0 {
		return Document{}, ErrInvalidInput
	}

	if maxDocs > 0 {
		count, err := s.repo.CountByPets(ctx, ownerPetIDs)
		if err != nil {
			return Document{}, err
		}
		if count >= maxDocs {
			return Document{}, ErrPlanLimit
		}
	}

	d := Document{
		ID:         uuid.NewString(),
		EntryID:    entryID,
		PetID:      petID,
		FileURL:    strings.TrimSpace(in.FileURL),
		FileType:   strings.TrimSpace(in.FileType),
		FileName:   strings.TrimSpace(in.FileName),
		FileSize:   in.FileSize,
		UploadedAt: s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Document{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Recent devuelve los últimos documentos de la mascota (más nuevos primero).
func (s *Service) Recent(ctx context.Context, petID string, limit int) ([]Document, error) {
	return s.repo.ListByPet(ctx, petID, limit)
}

func (s *Service) ListByEntry(ctx context.Context, entryID string) ([]Document, error) {
	return s.repo.ListByEntry(ctx, entryID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Lo usan otros módulos (timeline, reminders, vault, assistant) para autorizar
// sin acoplarse al modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

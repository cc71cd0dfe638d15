package assistant

import (
	"context"
	"time"
)

type MessageRepository interface {
	// Append persiste los mensajes en orden.
	Append(ctx context.Context, msgs []ChatMessage) error
	// CountSince cuenta mensajes del usuario con created_at >= since.
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	// Recent devuelve los últimos mensajes del usuario, más nuevos primero.
	Recent(ctx context.Context, userID string, limit int) ([]ChatMessage, error)
}

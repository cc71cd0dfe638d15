package assistant

import "time"

// Role del mensaje en la conversación.
// @Enum user, assistant
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage es un turno persistido de la conversación.
// Append-only: nunca se edita ni se borra.
type ChatMessage struct {
	ID     string
	UserID string

	Role    Role
	Content string

	CreatedAt time.Time
}

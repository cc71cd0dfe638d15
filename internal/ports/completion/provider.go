package completion

import "context"

// Message es un turno de conversación tal como lo espera el proveedor.
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider es el proveedor externo de completions (Groq u otro compatible).
// El caller arma el prompt completo; el adapter no conoce el dominio.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// Un error nunca corta el request: el middleware degrada a anónimo.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

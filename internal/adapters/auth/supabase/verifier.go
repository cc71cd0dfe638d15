package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petvault/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier para access tokens de Supabase.
// Si hay jwtSecret, verifica local (HS256, sin round-trip); si no, consulta
// GoTrue vía el Client.
type Verifier struct {
	client    *Client
	jwtSecret []byte
}

func NewVerifier(client *Client, jwtSecret string) *Verifier {
	v := &Verifier{client: client}
	if s := strings.TrimSpace(jwtSecret); s != "" {
		v.jwtSecret = []byte(s)
	}
	return v
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	if len(v.jwtSecret) > 0 {
		return v.verifyLocal(token)
	}

	if v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	claims, err := v.client.GetUser(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
	}
	return claims, nil
}

// verifyLocal valida firma y expiración del JWT y extrae sub/email.
// jwt/v5 valida exp por default en ParseWithClaims.
func (v *Verifier) verifyLocal(token string) (auth.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.jwtSecret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("invalid token: %w", err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, errors.New("invalid token claims")
	}

	sub, _ := mc["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, errors.New("token missing sub claim")
	}

	email, _ := mc["email"].(string)

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(email),
	}, nil
}

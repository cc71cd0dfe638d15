package supabase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_LocalJWT(t *testing.T) {
	v := NewVerifier(nil, "super-secret")

	token := signToken(t, "super-secret", jwt.MapClaims{
		"sub":   "user-123",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifier_LocalJWT_RejectsBadSignature(t *testing.T) {
	v := NewVerifier(nil, "super-secret")

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for wrong signature")
	}
}

func TestVerifier_LocalJWT_RejectsExpired(t *testing.T) {
	v := NewVerifier(nil, "super-secret")

	token := signToken(t, "super-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestVerifier_LocalJWT_RequiresSub(t *testing.T) {
	v := NewVerifier(nil, "super-secret")

	token := signToken(t, "super-secret", jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected error for missing sub")
	}
}

func TestVerifier_EmptyToken(t *testing.T) {
	v := NewVerifier(nil, "super-secret")

	if _, err := v.Verify(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

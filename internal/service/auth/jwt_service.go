// Package auth issues and verifies the signed session tokens that carry a
// caller's identity. Tokens are HS256 JWTs delivered to browsers in an
// HTTP-only cookie; this package knows nothing about the cookie itself.
package auth

import (
	"context"
	"time"
)

// ClaimEmail is the claim naming the caller's identity.
const ClaimEmail = "email"

// TokenService defines operations for managing identity tokens.
type TokenService interface {
	// IssueToken creates a signed, time-limited token embedding the given
	// claims. The claims must contain a non-empty "email".
	IssueToken(ctx context.Context, claims map[string]any) (string, error)

	// VerifyToken validates the signature and expiry of token and returns
	// its claims. Fails with ErrMissingToken, ErrInvalidToken or
	// ErrExpiredToken.
	VerifyToken(ctx context.Context, token string) (*Claims, error)

	// TokenLifetime reports how long issued tokens stay valid.
	TokenLifetime() time.Duration
}

// Claims is the verified content of an identity token.
type Claims struct {
	// Email is the authenticated identity; every ownership check compares
	// against it.
	Email string

	// Values holds every caller-supplied claim, including email.
	Values map[string]any

	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

package mocks

import (
	"context"
	"time"

	"github.com/Sakebul-islam/kola-server-side/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueTokenFn allows test cases to mock the IssueToken behavior
	IssueTokenFn func(ctx context.Context, claims map[string]any) (string, error)

	// VerifyTokenFn allows test cases to mock the VerifyToken behavior
	VerifyTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	Err       error
	VerifyErr error
	Claims    *auth.Claims
	Lifetime  time.Duration
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface
func (m *MockTokenService) IssueToken(ctx context.Context, claims map[string]any) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, claims)
	}
	return m.Token, m.Err
}

// VerifyToken implements the auth.TokenService interface
func (m *MockTokenService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, token)
	}
	return m.Claims, m.VerifyErr
}

// TokenLifetime implements the auth.TokenService interface. It defaults to
// one hour.
func (m *MockTokenService) TokenLifetime() time.Duration {
	if m.Lifetime == 0 {
		return time.Hour
	}
	return m.Lifetime
}

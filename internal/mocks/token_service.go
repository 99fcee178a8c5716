package mocks

import (
	"context"
	"time"

	"github.com/shutter-safari/api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, identity auth.IdentityClaims) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Defaults used when the Fn fields are nil.
	Token           string
	TokenError      error
	Claims          *auth.Claims
	ValidationError error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// NewMockTokenService returns a mock that issues "mock-token" and validates
// any token as belonging to email.
func NewMockTokenService(email string) *MockTokenService {
	now := time.Now()
	return &MockTokenService{
		Token: "mock-token",
		Claims: &auth.Claims{
			Email:     email,
			Subject:   email,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        "mock-jti",
		},
	}
}

// GenerateToken implements auth.TokenService.
func (m *MockTokenService) GenerateToken(ctx context.Context, identity auth.IdentityClaims) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, identity)
	}
	return m.Token, m.TokenError
}

// ValidateToken implements auth.TokenService.
func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}

package auth

import (
	"context"
	"time"
)

// TokenService issues and verifies signed bearer tokens carrying the
// caller's email as identity claim.
type TokenService interface {
	// GenerateToken signs a token embedding the identity claims. Nothing is
	// checked against the user store at issuance.
	GenerateToken(ctx context.Context, identity IdentityClaims) (string, error)

	// ValidateToken verifies signature and time claims and returns the
	// decoded claims. Failures are ErrInvalidToken, ErrExpiredToken or
	// ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// IdentityClaims is what a caller asks to have signed.
type IdentityClaims struct {
	Email string

	// Extra holds any additional caller supplied claims (name, photoUrl, ...).
	// Registered claim names are ignored.
	Extra map[string]interface{}
}

// Claims is the decoded content of a valid token.
type Claims struct {
	Email string                 `json:"email"`
	Extra map[string]interface{} `json:"extra,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

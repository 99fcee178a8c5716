package auth

import "errors"

// Token errors. All of them surface as 401 at the HTTP layer.
var (
	// ErrInvalidToken covers malformed tokens, bad signatures, unexpected
	// signing methods and tokens without an email claim.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates no bearer token was sent.
	ErrMissingToken = errors.New("authentication token is missing")
)

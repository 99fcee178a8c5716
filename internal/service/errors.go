package service

import "errors"

// Service errors. The API layer maps these to status codes.
var (
	// ErrForbidden indicates the caller's identity or role does not permit the
	// operation. Maps to 403.
	ErrForbidden = errors.New("forbidden access")

	// ErrPaymentProcessor indicates the external payment processor failed.
	// Maps to 500.
	ErrPaymentProcessor = errors.New("payment processor error")
)

// SameIdentity reports whether the email claimed by a token matches the
// email a request targets. An empty claim never matches.
func SameIdentity(claimed, requested string) bool {
	return claimed != "" && claimed == requested
}

package api

import (
	"github.com/shutter-safari/api/internal/domain"
)

// TokenRequest is the body of POST /jwt. Email is required; every other
// field is carried into the token as an extra claim.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse is returned by POST /jwt.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserRequest is the body of POST /users and PUT /user/{id}.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role"     validate:"omitempty,oneof=user instructor admin"`
}

func (req UserRequest) toDomain() *domain.User {
	return &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     domain.Role(req.Role),
	}
}

// UpdateRoleRequest is the body of PUT /update-user-role/{id}.
type UpdateRoleRequest struct {
	RoleID string `json:"roleId" validate:"required,oneof=user instructor admin"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntentResponse carries the processor's client secret.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RoleCheckResponse builds the {<role>: bool} body of the role check endpoints.
func RoleCheckResponse(role domain.Role, holds bool) map[string]bool {
	return map[string]bool{string(role): holds}
}

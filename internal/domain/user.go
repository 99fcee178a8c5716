package domain

import (
	"net/mail"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the authorization level stored on a user document.
type Role string

const (
	RoleUser       Role = "user"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", NewValidationError("role", "must be one of user, instructor, admin", ErrInvalidRole)
	}
	return r, nil
}

// User is a marketplace account. Email is the natural key; at most one user
// document exists per email.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	PhotoURL string             `bson:"photoUrl" json:"photoUrl"`
	Role     Role               `bson:"role" json:"role"`
}

// NewUser builds a user for first sign-in. An empty role defaults to RoleUser.
func NewUser(name, email, photoURL string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	u := &User{
		Name:     name,
		Email:    email,
		PhotoURL: photoURL,
		Role:     role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the email and role.
func (u *User) Validate() error {
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if !u.Role.Valid() {
		return NewValidationError("role", "must be one of user, instructor, admin", ErrInvalidRole)
	}
	return nil
}

// HasRole reports whether the user holds exactly role r.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role == r
}

// ValidateEmail checks that email is a bare RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}

package store

import (
	"context"

	"github.com/shutter-safari/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines the interface for the users collection.
type UserStore interface {
	// List returns every user document, unfiltered.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no document matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts a new user document.
	// Returns ErrEmailExists if the unique email index rejects it.
	Create(ctx context.Context, user *domain.User) (*InsertResult, error)

	// Upsert replaces name, email, photoUrl and role on the document with the
	// given id, creating it when absent.
	Upsert(ctx context.Context, id primitive.ObjectID, user *domain.User) (*UpdateResult, error)

	// Delete removes the user with the given id. Deleting a missing id is
	// not an error; the result reports zero deletions.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)

	// UpdateRole sets the role on the user with the given id and returns the
	// updated document. Returns ErrUserNotFound if no document matches.
	UpdateRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.User, error)
}

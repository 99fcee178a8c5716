package store

import (
	"context"

	"github.com/shutter-safari/api/internal/domain"
)

// ClassStore defines the interface for the classes collection.
type ClassStore interface {
	// ListByStatus returns every class with the given status.
	ListByStatus(ctx context.Context, status domain.ClassStatus) ([]*domain.Class, error)

	// ListAll returns every class regardless of status.
	ListAll(ctx context.Context) ([]*domain.Class, error)

	// ListTopRated returns up to limit classes ordered by ratings descending.
	// Ties keep the store's natural order.
	ListTopRated(ctx context.Context, limit int64) ([]*domain.Class, error)

	// ListByInstructor returns every class owned by the instructor email.
	ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error)

	// Create inserts the class as given.
	Create(ctx context.Context, class *domain.Class) (*InsertResult, error)
}

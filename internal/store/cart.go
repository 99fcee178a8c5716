package store

import (
	"context"

	"github.com/shutter-safari/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore defines the interface for the carts collection.
type CartStore interface {
	// ListByEmail returns the cart items owned by email.
	ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error)

	// ExistsByClassID reports whether any cart item references classID.
	ExistsByClassID(ctx context.Context, classID string) (bool, error)

	// Create inserts a cart item.
	Create(ctx context.Context, item *domain.CartItem) (*InsertResult, error)

	// Delete removes the cart item with the given id.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}

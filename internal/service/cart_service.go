package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService provides shopping cart operations.
type CartService interface {
	// ListCart returns the cart items of email. An empty email yields an
	// empty list; an email other than the caller's yields ErrForbidden.
	ListCart(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error)

	// AddToCart inserts item unless a cart item with the same classId
	// exists, in which case it returns store.ErrCartItemExists.
	AddToCart(ctx context.Context, item *domain.CartItem) (*store.InsertResult, error)

	// RemoveFromCart deletes the cart item with id.
	RemoveFromCart(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)
}

type cartServiceImpl struct {
	cartStore store.CartStore
	logger    *slog.Logger
}

var _ CartService = (*cartServiceImpl)(nil)

// NewCartService creates a new CartService.
func NewCartService(cartStore store.CartStore, logger *slog.Logger) CartService {
	return &cartServiceImpl{
		cartStore: cartStore,
		logger:    logger.With("component", "cart_service"),
	}
}

// ListCart implements CartService.
func (s *cartServiceImpl) ListCart(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error) {
	if email == "" {
		return []*domain.CartItem{}, nil
	}
	if !SameIdentity(callerEmail, email) {
		return nil, fmt.Errorf("%w: cart belongs to another user", ErrForbidden)
	}

	items, err := s.cartStore.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// AddToCart implements CartService. The existence check and the insert are
// separate store calls, so concurrent adds of one classId can both succeed.
func (s *cartServiceImpl) AddToCart(ctx context.Context, item *domain.CartItem) (*store.InsertResult, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.cartStore.ExistsByClassID(ctx, item.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cart item: %w", err)
	}
	if exists {
		return nil, store.ErrCartItemExists
	}

	res, err := s.cartStore.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("cart item added",
		"cart_item_id", res.InsertedID.Hex(),
		"class_id", item.ClassID)

	return res, nil
}

// RemoveFromCart implements CartService.
func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	res, err := s.cartStore.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return res, nil
}

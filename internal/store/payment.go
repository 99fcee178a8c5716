package store

import (
	"context"

	"github.com/shutter-safari/api/internal/domain"
)

// PaymentStore defines the interface for the payments collection.
type PaymentStore interface {
	// Create inserts a payment record.
	Create(ctx context.Context, payment *domain.Payment) (*InsertResult, error)

	// ListByDateDesc returns every payment, newest first.
	ListByDateDesc(ctx context.Context) ([]*domain.Payment, error)
}

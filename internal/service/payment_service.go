package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
)

// PaymentProcessor creates payment intents with an external processor.
type PaymentProcessor interface {
	// CreatePaymentIntent starts a charge of amount minor units and returns
	// the client secret the browser confirms it with.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// RecordPaymentResult carries the outcome of both steps of a checkout.
type RecordPaymentResult struct {
	InsertResult *store.InsertResult `json:"insertResult"`
	DeleteResult *store.DeleteResult `json:"deleteResult"`
}

// PaymentService provides checkout operations.
type PaymentService interface {
	// CreatePaymentIntent converts price to cents and asks the processor
	// for a payment intent, returning its client secret.
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)

	// RecordPayment stores the payment, then deletes the cart item whose id
	// is payment.CartItems.
	RecordPayment(ctx context.Context, payment *domain.Payment) (*RecordPaymentResult, error)

	// ListPayments returns all payments, newest first.
	ListPayments(ctx context.Context) ([]*domain.Payment, error)
}

type paymentServiceImpl struct {
	paymentStore store.PaymentStore
	cartStore    store.CartStore
	tx           store.Transactor
	processor    PaymentProcessor
	currency     string
	timeFunc     func() time.Time
	logger       *slog.Logger
}

var _ PaymentService = (*paymentServiceImpl)(nil)

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentStore store.PaymentStore,
	cartStore store.CartStore,
	tx store.Transactor,
	processor PaymentProcessor,
	currency string,
	logger *slog.Logger,
) (PaymentService, error) {
	if paymentStore == nil || cartStore == nil || tx == nil || processor == nil {
		return nil, errors.New("payment service dependencies cannot be nil")
	}
	if currency == "" {
		return nil, errors.New("currency cannot be empty")
	}

	return &paymentServiceImpl{
		paymentStore: paymentStore,
		cartStore:    cartStore,
		tx:           tx,
		processor:    processor,
		currency:     strings.ToLower(currency),
		timeFunc:     time.Now,
		logger:       logger.With("component", "payment_service"),
	}, nil
}

// CreatePaymentIntent implements PaymentService.
func (s *paymentServiceImpl) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	amount, err := domain.ToCents(price)
	if err != nil {
		return "", err
	}

	secret, err := s.processor.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		if errors.Is(err, ErrPaymentProcessor) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPaymentProcessor, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("payment intent created",
		"amount", amount,
		"currency", s.currency)

	return secret, nil
}

// RecordPayment implements PaymentService. Without store transactions the
// two writes are independent: a failed delete leaves the payment stored and
// the cart item in place.
func (s *paymentServiceImpl) RecordPayment(
	ctx context.Context,
	payment *domain.Payment,
) (*RecordPaymentResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cartItemID, err := domain.ParseID("cartItems", payment.CartItems)
	if err != nil {
		return nil, err
	}
	if payment.Date.IsZero() {
		payment.Date = s.timeFunc().UTC()
	}

	result := &RecordPaymentResult{}
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		ins, err := s.paymentStore.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		result.InsertResult = ins

		del, err := s.cartStore.Delete(ctx, cartItemID)
		if err != nil {
			log.Error("failed to remove cart item after inserting payment",
				"payment_id", ins.InsertedID.Hex(),
				"cart_item_id", cartItemID.Hex(),
				"error", err)
			return fmt.Errorf("failed to remove paid cart item: %w", err)
		}
		result.DeleteResult = del
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("payment recorded",
		"payment_id", result.InsertResult.InsertedID.Hex(),
		"cart_items_deleted", result.DeleteResult.DeletedCount)

	return result, nil
}

// ListPayments implements PaymentService.
func (s *paymentServiceImpl) ListPayments(ctx context.Context) ([]*domain.Payment, error) {
	payments, err := s.paymentStore.ListByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

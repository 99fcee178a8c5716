package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockPaymentStore implements store.PaymentStore in memory.
type MockPaymentStore struct {
	CreateFn         func(ctx context.Context, payment *domain.Payment) (*store.InsertResult, error)
	ListByDateDescFn func(ctx context.Context) ([]*domain.Payment, error)

	mu       sync.Mutex
	payments []*domain.Payment
}

var _ store.PaymentStore = (*MockPaymentStore)(nil)

// NewMockPaymentStore creates a store seeded with payments.
func NewMockPaymentStore(payments ...*domain.Payment) *MockPaymentStore {
	m := &MockPaymentStore{}
	for _, p := range payments {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		m.payments = append(m.payments, p)
	}
	return m
}

// Payments returns a snapshot of the stored payments in insertion order.
func (m *MockPaymentStore) Payments() []*domain.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Payment(nil), m.payments...)
}

// Create implements store.PaymentStore.
func (m *MockPaymentStore) Create(ctx context.Context, payment *domain.Payment) (*store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, payment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	cp := *payment
	m.payments = append(m.payments, &cp)
	return &store.InsertResult{InsertedID: payment.ID}, nil
}

// ListByDateDesc implements store.PaymentStore.
func (m *MockPaymentStore) ListByDateDesc(ctx context.Context) ([]*domain.Payment, error) {
	if m.ListByDateDescFn != nil {
		return m.ListByDateDescFn(ctx)
	}

	out := make([]*domain.Payment, 0)
	for _, p := range m.Payments() {
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCartStore implements store.CartStore in memory.
type MockCartStore struct {
	ListByEmailFn     func(ctx context.Context, email string) ([]*domain.CartItem, error)
	ExistsByClassIDFn func(ctx context.Context, classID string) (bool, error)
	CreateFn          func(ctx context.Context, item *domain.CartItem) (*store.InsertResult, error)
	DeleteFn          func(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)

	mu    sync.Mutex
	items []*domain.CartItem

	// ListByEmailCalls counts cart reads.
	ListByEmailCalls int
}

var _ store.CartStore = (*MockCartStore)(nil)

// NewMockCartStore creates a store seeded with items.
func NewMockCartStore(items ...*domain.CartItem) *MockCartStore {
	m := &MockCartStore{}
	for _, it := range items {
		if it.ID.IsZero() {
			it.ID = primitive.NewObjectID()
		}
		m.items = append(m.items, it)
	}
	return m
}

// Items returns a snapshot of the stored cart items.
func (m *MockCartStore) Items() []*domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.CartItem(nil), m.items...)
}

// ListByEmail implements store.CartStore.
func (m *MockCartStore) ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error) {
	m.mu.Lock()
	m.ListByEmailCalls++
	m.mu.Unlock()

	if m.ListByEmailFn != nil {
		return m.ListByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.CartItem, 0)
	for _, it := range m.items {
		if it.Email == email {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ExistsByClassID implements store.CartStore.
func (m *MockCartStore) ExistsByClassID(ctx context.Context, classID string) (bool, error) {
	if m.ExistsByClassIDFn != nil {
		return m.ExistsByClassIDFn(ctx, classID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

// Create implements store.CartStore.
func (m *MockCartStore) Create(ctx context.Context, item *domain.CartItem) (*store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = primitive.NewObjectID()
	cp := *item
	m.items = append(m.items, &cp)
	return &store.InsertResult{InsertedID: item.ID}, nil
}

// Delete implements store.CartStore.
func (m *MockCartStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return &store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{}, nil
}

package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockClassStore implements store.ClassStore in memory.
type MockClassStore struct {
	ListByStatusFn     func(ctx context.Context, status domain.ClassStatus) ([]*domain.Class, error)
	ListAllFn          func(ctx context.Context) ([]*domain.Class, error)
	ListTopRatedFn     func(ctx context.Context, limit int64) ([]*domain.Class, error)
	ListByInstructorFn func(ctx context.Context, email string) ([]*domain.Class, error)
	CreateFn           func(ctx context.Context, class *domain.Class) (*store.InsertResult, error)

	mu      sync.Mutex
	classes []*domain.Class
}

var _ store.ClassStore = (*MockClassStore)(nil)

// NewMockClassStore creates a store seeded with classes.
func NewMockClassStore(classes ...*domain.Class) *MockClassStore {
	m := &MockClassStore{}
	for _, c := range classes {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		m.classes = append(m.classes, c)
	}
	return m
}

// filter returns copies of the classes matching keep, so callers can
// annotate results without touching stored state.
func (m *MockClassStore) filter(keep func(*domain.Class) bool) []*domain.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Class, 0, len(m.classes))
	for _, c := range m.classes {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out
}

// ListByStatus implements store.ClassStore.
func (m *MockClassStore) ListByStatus(ctx context.Context, status domain.ClassStatus) ([]*domain.Class, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return m.filter(func(c *domain.Class) bool { return c.Status == status }), nil
}

// ListAll implements store.ClassStore.
func (m *MockClassStore) ListAll(ctx context.Context) ([]*domain.Class, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return m.filter(func(*domain.Class) bool { return true }), nil
}

// ListTopRated implements store.ClassStore.
func (m *MockClassStore) ListTopRated(ctx context.Context, limit int64) ([]*domain.Class, error) {
	if m.ListTopRatedFn != nil {
		return m.ListTopRatedFn(ctx, limit)
	}
	all := m.filter(func(*domain.Class) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].Ratings > all[j].Ratings })
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListByInstructor implements store.ClassStore.
func (m *MockClassStore) ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error) {
	if m.ListByInstructorFn != nil {
		return m.ListByInstructorFn(ctx, email)
	}
	return m.filter(func(c *domain.Class) bool { return c.InsEmail == email }), nil
}

// Create implements store.ClassStore.
func (m *MockClassStore) Create(ctx context.Context, class *domain.Class) (*store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, class)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	class.ID = primitive.NewObjectID()
	cp := *class
	m.classes = append(m.classes, &cp)
	return &store.InsertResult{InsertedID: class.ID}, nil
}

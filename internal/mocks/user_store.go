package mocks

import (
	"context"
	"sync"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserStore implements store.UserStore in memory.
type MockUserStore struct {
	ListFn       func(ctx context.Context) ([]*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	CreateFn     func(ctx context.Context, user *domain.User) (*store.InsertResult, error)
	UpsertFn     func(ctx context.Context, id primitive.ObjectID, user *domain.User) (*store.UpdateResult, error)
	DeleteFn     func(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)
	UpdateRoleFn func(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.User, error)

	mu    sync.Mutex
	users []*domain.User

	// GetByEmailCalls counts lookups by email.
	GetByEmailCalls int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a store seeded with users. Users without an ID
// get a fresh one.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		m.users = append(m.users, u)
	}
	return m
}

// Users returns a snapshot of the stored users.
func (m *MockUserStore) Users() []*domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.User(nil), m.users...)
}

func (m *MockUserStore) indexOf(id primitive.ObjectID) int {
	for i, u := range m.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// List implements store.UserStore.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return append([]*domain.User{}, m.Users()...), nil
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.GetByEmailCalls++
	m.mu.Unlock()

	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Create implements store.UserStore. It enforces email uniqueness like the
// unique index does.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*store.InsertResult, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, store.ErrEmailExists
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	m.users = append(m.users, &cp)
	return &store.InsertResult{InsertedID: user.ID}, nil
}

// Upsert implements store.UserStore.
func (m *MockUserStore) Upsert(
	ctx context.Context,
	id primitive.ObjectID,
	user *domain.User,
) (*store.UpdateResult, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, id, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *user
	cp.ID = id
	if i := m.indexOf(id); i >= 0 {
		modified := int64(0)
		if *m.users[i] != cp {
			modified = 1
		}
		m.users[i] = &cp
		return &store.UpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
	}

	m.users = append(m.users, &cp)
	return &store.UpdateResult{UpsertedCount: 1, UpsertedID: &id}, nil
}

// Delete implements store.UserStore.
func (m *MockUserStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(id); i >= 0 {
		m.users = append(m.users[:i], m.users[i+1:]...)
		return &store.DeleteResult{DeletedCount: 1}, nil
	}
	return &store.DeleteResult{}, nil
}

// UpdateRole implements store.UserStore.
func (m *MockUserStore) UpdateRole(
	ctx context.Context,
	id primitive.ObjectID,
	role domain.Role,
) (*domain.User, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, store.ErrUserNotFound
	}
	m.users[i].Role = role
	cp := *m.users[i]
	return &cp, nil
}

package mocks

import (
	"context"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/store"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// List is a mock implementation of store.UserStore.List
func (m *TestifyMockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) (*store.InsertResult, error) {
	args := m.Called(ctx, user)
	if res, ok := args.Get(0).(*store.InsertResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.UserStore.Upsert
func (m *TestifyMockUserStore) Upsert(
	ctx context.Context,
	id primitive.ObjectID,
	user *domain.User,
) (*store.UpdateResult, error) {
	args := m.Called(ctx, id, user)
	if res, ok := args.Get(0).(*store.UpdateResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *TestifyMockUserStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*store.DeleteResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateRole is a mock implementation of store.UserStore.UpdateRole
func (m *TestifyMockUserStore) UpdateRole(
	ctx context.Context,
	id primitive.ObjectID,
	role domain.Role,
) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

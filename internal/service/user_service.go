package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateUserResult reports the outcome of an idempotent user creation.
// Existed is set when a user with the email was already present, in which
// case nothing was written.
type CreateUserResult struct {
	Existed    bool
	InsertedID primitive.ObjectID
}

// UserService provides account operations and role checks.
type UserService interface {
	// ListUsers returns every user document, unfiltered.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// CreateUser inserts the user unless one with the same email exists.
	CreateUser(ctx context.Context, user *domain.User) (*CreateUserResult, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CheckRole reports whether the user at email holds role. A caller asking
	// about an email other than their own gets false without a lookup.
	CheckRole(ctx context.Context, callerEmail, email string, role domain.Role) (bool, error)

	// UpsertUser replaces the profile fields of the user with id, creating the
	// document when absent.
	UpsertUser(ctx context.Context, id primitive.ObjectID, user *domain.User) (*store.UpdateResult, error)

	// DeleteUser removes the user with id.
	DeleteUser(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)

	// UpdateUserRole sets the role of the user with id and returns the
	// updated document.
	UpdateUserRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (*domain.User, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

func (s *userServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// ListUsers implements UserService.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser implements UserService.
func (s *userServiceImpl) CreateUser(ctx context.Context, user *domain.User) (*CreateUserResult, error) {
	log := s.log(ctx)

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	_, err := s.userStore.GetByEmail(ctx, user.Email)
	switch {
	case err == nil:
		log.Debug("user already exists", "email", user.Email)
		return &CreateUserResult{Existed: true}, nil
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	res, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Lost a race with a concurrent sign-in for the same email.
			log.Debug("user created concurrently", "email", user.Email)
			return &CreateUserResult{Existed: true}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created",
		"user_id", res.InsertedID.Hex(),
		"role", user.Role)

	return &CreateUserResult{InsertedID: res.InsertedID}, nil
}

// GetUserByEmail implements UserService.
func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// CheckRole implements UserService.
func (s *userServiceImpl) CheckRole(
	ctx context.Context,
	callerEmail, email string,
	role domain.Role,
) (bool, error) {
	if !SameIdentity(callerEmail, email) {
		s.log(ctx).Debug("role check for another identity", "role", role)
		return false, nil
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return user.HasRole(role), nil
}

// UpsertUser implements UserService.
func (s *userServiceImpl) UpsertUser(
	ctx context.Context,
	id primitive.ObjectID,
	user *domain.User,
) (*store.UpdateResult, error) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	res, err := s.userStore.Upsert(ctx, id, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	s.log(ctx).Debug("user upserted",
		"user_id", id.Hex(),
		"matched", res.MatchedCount,
		"upserted", res.UpsertedCount)

	return res, nil
}

// DeleteUser implements UserService.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	res, err := s.userStore.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	s.log(ctx).Info("user deleted", "user_id", id.Hex(), "deleted", res.DeletedCount)
	return res, nil
}

// UpdateUserRole implements UserService.
func (s *userServiceImpl) UpdateUserRole(
	ctx context.Context,
	id primitive.ObjectID,
	role domain.Role,
) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.NewValidationError("roleId", "must be one of user, instructor, admin", domain.ErrInvalidRole)
	}

	user, err := s.userStore.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	s.log(ctx).Info("user role updated", "user_id", id.Hex(), "role", role)
	return user, nil
}

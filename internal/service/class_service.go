package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/platform/logger"
	"github.com/shutter-safari/api/internal/store"
)

// ClassService provides class listing operations.
type ClassService interface {
	// ListApproved returns approved classes, each annotated with the number
	// of approved classes sharing its instructor email.
	ListApproved(ctx context.Context) ([]*domain.Class, error)

	// ListPopular returns the highest rated classes, each annotated with the
	// number of classes (any status) sharing its instructor email.
	ListPopular(ctx context.Context) ([]*domain.Class, error)

	// ListByInstructor returns every class of one instructor, any status.
	ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error)

	// CreateClass stores a submitted class as sent.
	CreateClass(ctx context.Context, class *domain.Class) (*store.InsertResult, error)
}

type classServiceImpl struct {
	classStore store.ClassStore
	logger     *slog.Logger
}

var _ ClassService = (*classServiceImpl)(nil)

// NewClassService creates a new ClassService.
func NewClassService(classStore store.ClassStore, logger *slog.Logger) ClassService {
	return &classServiceImpl{
		classStore: classStore,
		logger:     logger.With("component", "class_service"),
	}
}

// ListApproved implements ClassService.
func (s *classServiceImpl) ListApproved(ctx context.Context) ([]*domain.Class, error) {
	classes, err := s.classStore.ListByStatus(ctx, domain.ClassStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved classes: %w", err)
	}

	domain.AnnotateSameEmailCount(classes, domain.CountByInstructor(classes))
	return classes, nil
}

// ListPopular implements ClassService. The count population is all classes,
// not only approved ones, unlike ListApproved.
func (s *classServiceImpl) ListPopular(ctx context.Context) ([]*domain.Class, error) {
	top, err := s.classStore.ListTopRated(ctx, domain.PopularLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular classes: %w", err)
	}

	all, err := s.classStore.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	domain.AnnotateSameEmailCount(top, domain.CountByInstructor(all))
	return top, nil
}

// ListByInstructor implements ClassService.
func (s *classServiceImpl) ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error) {
	classes, err := s.classStore.ListByInstructor(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor classes: %w", err)
	}
	return classes, nil
}

// CreateClass implements ClassService.
func (s *classServiceImpl) CreateClass(ctx context.Context, class *domain.Class) (*store.InsertResult, error) {
	res, err := s.classStore.Create(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("class created",
		"class_id", res.InsertedID.Hex(),
		"status", class.Status)

	return res, nil
}

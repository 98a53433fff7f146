package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

// CourseRepository is the persistence port the course use cases need.
type CourseRepository interface {
	Save(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByCode(ctx context.Context, code string) (*models.Course, error)
	FindAll(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
}

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, in models.CourseInput, actingUser string) (*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, id string, patch dto.UpdateCourseRequest, actingUser string) (*models.Course, error)
	FinalizeCourse(ctx context.Context, id, actingUser string) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// CreateCourse validates and persists a new ACTIVE course. The course code
// must be unique.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, in models.CourseInput, actingUser string) (*models.Course, error) {
	course, err := models.NewCourse(in, actingUser)
	if err != nil {
		return nil, err
	}

	if existing, err := s.courseRepo.FindByCode(ctx, course.Code); err == nil && existing != nil {
		return nil, apperrors.NewDuplicateError("course", course.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("error checking course code uniqueness: %w", err)
	}

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses retrieves courses matching the filter. When the caller
// supplies no status filter only ACTIVE courses are returned.
func (s *courseServiceImpl) ListCourses(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int64, error) {
	if filter.Status == "" {
		filter.Status = models.CourseStatusActive
	}
	courses, total, err := s.courseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, total, nil
}

// UpdateCourse merges the patch onto the stored course, re-validates the
// merged result and persists it. FINALIZED courses are immutable.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, patch dto.UpdateCourseRequest, actingUser string) (*models.Course, error) {
	existing, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsFinalized() {
		return nil, apperrors.NewBusinessRuleError("course.finalized-immutable",
			fmt.Sprintf("course %s is finalized and cannot be updated", id))
	}

	in, status := patch.MergeInto(existing)
	if status == models.CourseStatusFinalized {
		return nil, apperrors.NewBusinessRuleError("course.finalize-via-remove",
			"finalizing a course goes through the finalize operation")
	}

	updated, err := existing.WithUpdate(in, status, actingUser)
	if err != nil {
		return nil, err
	}

	if updated.Code != existing.Code {
		if other, err := s.courseRepo.FindByCode(ctx, updated.Code); err == nil && other != nil && other.ID != id {
			return nil, apperrors.NewDuplicateError("course", updated.Code)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("error checking course code uniqueness: %w", err)
		}
	}

	if err := s.courseRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return updated, nil
}

// FinalizeCourse transitions the course to its FINALIZED terminal state.
// Courses are never physically removed.
func (s *courseServiceImpl) FinalizeCourse(ctx context.Context, id, actingUser string) error {
	existing, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsFinalized() {
		return apperrors.NewBusinessRuleError("course.already-finalized",
			fmt.Sprintf("course %s is already finalized", id))
	}

	if err := s.courseRepo.Update(ctx, existing.Finalized(actingUser)); err != nil {
		return fmt.Errorf("error finalizing course: %w", err)
	}
	return nil
}

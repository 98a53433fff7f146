package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

// HollandRepository is the persistence port the assessment use cases need.
type HollandRepository interface {
	Save(ctx context.Context, test *models.HollandTest) error
	FindByID(ctx context.Context, id string) (*models.HollandTest, error)
	FindAll(ctx context.Context, filter models.HollandFilter) ([]*models.HollandTest, int64, error)
	FindByStudent(ctx context.Context, studentID string) ([]*models.HollandTest, error)
	Update(ctx context.Context, test *models.HollandTest) error
	Delete(ctx context.Context, id string) error
}

// HollandService defines the interface for vocational-test operations
type HollandService interface {
	RegisterTest(ctx context.Context, in models.HollandTestInput, actingUser string) (*models.HollandTest, error)
	GetTestByID(ctx context.Context, id string) (*models.HollandTest, error)
	ListTests(ctx context.Context, filter models.HollandFilter) ([]*models.HollandTest, int64, error)
	ListStudentTests(ctx context.Context, studentID string) ([]*models.HollandTest, error)
	UpdateTest(ctx context.Context, id string, patch dto.UpdateHollandTestRequest, actingUser string) (*models.HollandTest, error)
	InvalidateTest(ctx context.Context, id, actingUser string) (*models.HollandTest, error)
	DeleteTest(ctx context.Context, id string) error
}

// hollandServiceImpl implements the HollandService interface
type hollandServiceImpl struct {
	hollandRepo HollandRepository
	studentRepo StudentRepository
}

// NewHollandService creates a new Holland test service instance
func NewHollandService(hollandRepo HollandRepository, studentRepo StudentRepository) HollandService {
	return &hollandServiceImpl{hollandRepo: hollandRepo, studentRepo: studentRepo}
}

// RegisterTest validates and persists a new assessment for an existing
// student. Multiple assessments per student are allowed; counselors
// compare results over time.
func (s *hollandServiceImpl) RegisterTest(ctx context.Context, in models.HollandTestInput, actingUser string) (*models.HollandTest, error) {
	test, err := models.NewHollandTest(in, actingUser)
	if err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.FindByID(ctx, test.StudentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBusinessRuleError("holland.student-not-found",
				fmt.Sprintf("student %s does not exist", test.StudentID))
		}
		return nil, fmt.Errorf("error checking student %s: %w", test.StudentID, err)
	}

	if err := s.hollandRepo.Save(ctx, test); err != nil {
		return nil, fmt.Errorf("error registering Holland test: %w", err)
	}
	return test, nil
}

// GetTestByID retrieves an assessment by ID
func (s *hollandServiceImpl) GetTestByID(ctx context.Context, id string) (*models.HollandTest, error) {
	test, err := s.hollandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return test, nil
}

// ListTests retrieves assessments matching the filter.
func (s *hollandServiceImpl) ListTests(ctx context.Context, filter models.HollandFilter) ([]*models.HollandTest, int64, error) {
	tests, total, err := s.hollandRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing Holland tests: %w", err)
	}
	return tests, total, nil
}

// ListStudentTests retrieves every assessment of one student, newest first.
func (s *hollandServiceImpl) ListStudentTests(ctx context.Context, studentID string) ([]*models.HollandTest, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	tests, err := s.hollandRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student Holland tests: %w", err)
	}
	return tests, nil
}

// UpdateTest merges the patch onto the stored assessment, re-validates the
// merged result and persists it. INVALIDATED assessments cannot be updated,
// and the INVALIDATED status cannot be reached through a patch.
func (s *hollandServiceImpl) UpdateTest(ctx context.Context, id string, patch dto.UpdateHollandTestRequest, actingUser string) (*models.HollandTest, error) {
	existing, err := s.hollandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.HollandStatusInvalidated {
		return nil, apperrors.NewBusinessRuleError("holland.invalidated-immutable",
			fmt.Sprintf("Holland test %s is invalidated and cannot be updated", id))
	}

	in, status, err := patch.MergeInto(existing)
	if err != nil {
		return nil, apperrors.NewValidationError("testDate", err.Error())
	}
	if status == models.HollandStatusInvalidated {
		return nil, apperrors.NewBusinessRuleError("holland.invalidate-via-invalidate",
			"invalidating a test goes through the invalidate operation")
	}

	updated, err := existing.WithUpdate(in, status, actingUser)
	if err != nil {
		return nil, err
	}

	if err := s.hollandRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("error updating Holland test: %w", err)
	}
	return updated, nil
}

// InvalidateTest transitions an assessment to its INVALIDATED terminal
// state. Assessments are never physically removed.
func (s *hollandServiceImpl) InvalidateTest(ctx context.Context, id, actingUser string) (*models.HollandTest, error) {
	existing, err := s.hollandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.HollandStatusInvalidated {
		return nil, apperrors.NewBusinessRuleError("holland.already-invalidated",
			fmt.Sprintf("Holland test %s is already invalidated", id))
	}

	invalidated := existing.Invalidated(actingUser)
	if err := s.hollandRepo.Update(ctx, invalidated); err != nil {
		return nil, fmt.Errorf("error invalidating Holland test: %w", err)
	}
	return invalidated, nil
}

// DeleteTest permanently removes an assessment. Unlike invalidation this is
// a hard delete for records that should never have been registered.
func (s *hollandServiceImpl) DeleteTest(ctx context.Context, id string) error {
	if _, err := s.hollandRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.hollandRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting Holland test: %w", err)
	}
	return nil
}

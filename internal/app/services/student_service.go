package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

// StudentRepository is the persistence port the student use cases need.
type StudentRepository interface {
	Save(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByNationalID(ctx context.Context, nationalID string) (*models.Student, error)
	FindAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
}

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, in models.StudentInput, actingUser string) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, id string, patch dto.UpdateStudentRequest, actingUser string) (*models.Student, error)
	RemoveStudent(ctx context.Context, id, actingUser string) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// CreateStudent validates and persists a new ACTIVE student. The national
// ID must not already be registered.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, in models.StudentInput, actingUser string) (*models.Student, error) {
	student, err := models.NewStudent(in, actingUser)
	if err != nil {
		return nil, err
	}

	if existing, err := s.studentRepo.FindByNationalID(ctx, student.NationalID); err == nil && existing != nil {
		return nil, apperrors.NewDuplicateError("student", student.NationalID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("error checking national ID uniqueness: %w", err)
	}

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// ListStudents retrieves students matching the filter. When the caller
// supplies no status filter only ACTIVE students are returned.
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	if filter.Status == "" {
		filter.Status = models.StudentStatusActive
	}
	students, total, err := s.studentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	return students, total, nil
}

// UpdateStudent merges the patch onto the stored student, re-validates the
// merged result through the entity factory and persists it. WITHDRAWN
// students cannot be updated.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, patch dto.UpdateStudentRequest, actingUser string) (*models.Student, error) {
	existing, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsWithdrawn() {
		return nil, apperrors.NewBusinessRuleError("student.withdrawn-immutable",
			fmt.Sprintf("student %s is withdrawn and cannot be updated", id))
	}

	in, status, err := patch.MergeInto(existing)
	if err != nil {
		return nil, apperrors.NewValidationError("birthDate", err.Error())
	}
	if status == models.StudentStatusWithdrawn {
		return nil, apperrors.NewBusinessRuleError("student.withdraw-via-remove",
			"withdrawing a student goes through the remove operation")
	}

	updated, err := existing.WithUpdate(in, status, actingUser)
	if err != nil {
		return nil, err
	}

	if updated.NationalID != existing.NationalID {
		if other, err := s.studentRepo.FindByNationalID(ctx, updated.NationalID); err == nil && other != nil && other.ID != id {
			return nil, apperrors.NewDuplicateError("student", updated.NationalID)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("error checking national ID uniqueness: %w", err)
		}
	}

	if err := s.studentRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return updated, nil
}

// RemoveStudent soft-deletes the student by transitioning to WITHDRAWN.
// Records are never physically removed.
func (s *studentServiceImpl) RemoveStudent(ctx context.Context, id, actingUser string) error {
	existing, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsWithdrawn() {
		return apperrors.NewBusinessRuleError("student.already-withdrawn",
			fmt.Sprintf("student %s is already withdrawn", id))
	}

	withdrawn, err := existing.WithUpdate(models.StudentInput{
		NationalID:       existing.NationalID,
		FirstName:        existing.FirstName,
		LastName:         existing.LastName,
		Email:            existing.Email,
		Phone:            existing.Phone,
		BirthDate:        existing.BirthDate,
		Grade:            existing.Grade,
		Section:          existing.Section,
		Address:          existing.Address,
		EmergencyContact: existing.EmergencyContact,
		EnrollmentDate:   existing.EnrollmentDate,
	}, models.StudentStatusWithdrawn, actingUser)
	if err != nil {
		return err
	}

	if err := s.studentRepo.Update(ctx, withdrawn); err != nil {
		return fmt.Errorf("error withdrawing student: %w", err)
	}
	return nil
}

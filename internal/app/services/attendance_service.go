package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/helpers"
	"github.com/emre/scholaris/internal/pkg/logger"
	"github.com/emre/scholaris/internal/pkg/metrics"
)

// AttendanceRepository is the persistence port the attendance use cases
// need. FindByStudentCourseDate returns ErrNotFound when no record exists
// for the identity triple.
type AttendanceRepository interface {
	Save(ctx context.Context, attendance *models.Attendance) error
	FindByID(ctx context.Context, id string) (*models.Attendance, error)
	FindByStudentCourseDate(ctx context.Context, studentID, courseID string, date time.Time) (*models.Attendance, error)
	FindAll(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, int64, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id string) error
	SummarizeByStudent(ctx context.Context, studentID string, from, to *time.Time) (*models.AttendanceSummary, error)
	SummarizeByCourse(ctx context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error)
}

// BulkEntry is one roster entry of a bulk registration.
type BulkEntry struct {
	StudentID   string
	Status      models.AttendanceStatus
	ArrivalTime string
	Notes       string
}

// BulkFailure reports one roster entry that was skipped and why.
type BulkFailure struct {
	StudentID string
	Reason    string
}

// BulkResult carries the partial-success outcome of a bulk registration.
type BulkResult struct {
	Created  []*models.Attendance
	Failures []BulkFailure
}

// AttendanceService defines the interface for attendance-related operations
type AttendanceService interface {
	RecordAttendance(ctx context.Context, in models.AttendanceInput, actingUser string) (*models.Attendance, error)
	BulkRegister(ctx context.Context, courseID string, date time.Time, entries []BulkEntry, actingUser string) (*BulkResult, error)
	GetAttendanceByID(ctx context.Context, id string) (*models.Attendance, error)
	ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, int64, error)
	CorrectAttendance(ctx context.Context, id string, status models.AttendanceStatus, arrivalTime, notes, actingUser string) (*models.Attendance, error)
	DeleteAttendance(ctx context.Context, id string) error
	GetStudentSummary(ctx context.Context, studentID string, from, to *time.Time) (*models.AttendanceSummary, error)
	GetCourseSummary(ctx context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo AttendanceRepository
	studentRepo    StudentRepository
	courseRepo     CourseRepository
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo AttendanceRepository, studentRepo StudentRepository, courseRepo CourseRepository) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
	}
}

// RecordAttendance registers one attendance record. The preconditions run
// in order before the record is built: the student must exist, the course
// must exist, and no record may already cover the (student, course, date)
// triple; each failed precondition surfaces as its own named error.
func (s *attendanceServiceImpl) RecordAttendance(ctx context.Context, in models.AttendanceInput, actingUser string) (*models.Attendance, error) {
	if err := s.checkStudent(ctx, in.StudentID); err != nil {
		return nil, err
	}
	if err := s.checkCourse(ctx, in.CourseID); err != nil {
		return nil, err
	}
	if err := s.checkNoDuplicate(ctx, in.StudentID, in.CourseID, helpers.TruncateToDay(in.Date)); err != nil {
		return nil, err
	}

	attendance, err := models.NewAttendance(in, actingUser)
	if err != nil {
		return nil, err
	}

	// The UNIQUE constraint on (student, course, date) backstops the check
	// above under concurrent registration; the repository maps its
	// violation to ErrDuplicate.
	if err := s.attendanceRepo.Save(ctx, attendance); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("error recording attendance: %w", err)
	}
	return attendance, nil
}

// BulkRegister registers attendance for a whole roster on one date. The
// course must exist; individual entries that fail validation or
// preconditions are skipped and reported, valid entries are still created.
func (s *attendanceServiceImpl) BulkRegister(ctx context.Context, courseID string, date time.Time, entries []BulkEntry, actingUser string) (*BulkResult, error) {
	if err := s.checkCourse(ctx, courseID); err != nil {
		return nil, err
	}

	result := &BulkResult{
		Created:  make([]*models.Attendance, 0, len(entries)),
		Failures: make([]BulkFailure, 0),
	}

	for _, entry := range entries {
		attendance, err := s.RecordAttendance(ctx, models.AttendanceInput{
			StudentID:   entry.StudentID,
			CourseID:    courseID,
			Date:        date,
			Status:      entry.Status,
			ArrivalTime: entry.ArrivalTime,
			Notes:       entry.Notes,
		}, actingUser)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("studentId", entry.StudentID).
				Str("courseId", courseID).
				Msg("Skipping bulk attendance entry")
			metrics.BulkAttendanceFailures.Inc()
			result.Failures = append(result.Failures, BulkFailure{
				StudentID: entry.StudentID,
				Reason:    err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, attendance)
	}

	logger.Info().
		Str("courseId", courseID).
		Int("created", len(result.Created)).
		Int("failed", len(result.Failures)).
		Msg("Bulk attendance registration finished")
	return result, nil
}

// GetAttendanceByID retrieves an attendance record by ID
func (s *attendanceServiceImpl) GetAttendanceByID(ctx context.Context, id string) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListAttendance retrieves attendance records matching the filter.
func (s *attendanceServiceImpl) ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, int64, error) {
	records, total, err := s.attendanceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing attendance: %w", err)
	}
	return records, total, nil
}

// CorrectAttendance replaces the mutable fields of a record. The
// (student, course, date) identity never changes.
func (s *attendanceServiceImpl) CorrectAttendance(ctx context.Context, id string, status models.AttendanceStatus, arrivalTime, notes, actingUser string) (*models.Attendance, error) {
	existing, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	corrected, err := existing.WithCorrection(status, arrivalTime, notes, actingUser)
	if err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.Update(ctx, corrected); err != nil {
		return nil, fmt.Errorf("error correcting attendance: %w", err)
	}
	return corrected, nil
}

// DeleteAttendance removes a mistaken record entirely.
func (s *attendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if _, err := s.attendanceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting attendance: %w", err)
	}
	return nil
}

// GetStudentSummary aggregates a student's records in the optional date
// range. A student with no records yields an all-zero summary.
func (s *attendanceServiceImpl) GetStudentSummary(ctx context.Context, studentID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	summary, err := s.attendanceRepo.SummarizeByStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error summarizing student attendance: %w", err)
	}
	summary.ComputeRate()
	return summary, nil
}

// GetCourseSummary aggregates a course's records in the optional date
// range. A course with no records yields an all-zero summary.
func (s *attendanceServiceImpl) GetCourseSummary(ctx context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	summary, err := s.attendanceRepo.SummarizeByCourse(ctx, courseID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error summarizing course attendance: %w", err)
	}
	summary.ComputeRate()
	return summary, nil
}

func (s *attendanceServiceImpl) checkStudent(ctx context.Context, studentID string) error {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBusinessRuleError("attendance.student-not-found",
				fmt.Sprintf("student %s does not exist", studentID))
		}
		return fmt.Errorf("error checking student %s: %w", studentID, err)
	}
	return nil
}

func (s *attendanceServiceImpl) checkCourse(ctx context.Context, courseID string) error {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBusinessRuleError("attendance.course-not-found",
				fmt.Sprintf("course %s does not exist", courseID))
		}
		return fmt.Errorf("error checking course %s: %w", courseID, err)
	}
	return nil
}

func (s *attendanceServiceImpl) checkNoDuplicate(ctx context.Context, studentID, courseID string, date time.Time) error {
	if existing, err := s.attendanceRepo.FindByStudentCourseDate(ctx, studentID, courseID, date); err == nil && existing != nil {
		return apperrors.NewDuplicateError("attendance",
			fmt.Sprintf("student %s, course %s, date %s", studentID, courseID, date.Format("2006-01-02")))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("error checking attendance uniqueness: %w", err)
	}
	return nil
}

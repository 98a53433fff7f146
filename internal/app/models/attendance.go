package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent   AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent    AttendanceStatus = "ABSENT"
	AttendanceStatusLate      AttendanceStatus = "LATE"
	AttendanceStatusJustified AttendanceStatus = "JUSTIFIED"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusJustified:
		return true
	default:
		return false
	}
}

// AttendanceNotesMinLength is the minimum justification note length.
const AttendanceNotesMinLength = 10

// Attendance is one validated record per (student, course, date). The
// identity triple never changes after construction; only status, arrival
// time and notes can be corrected.
type Attendance struct {
	ID                    string           `json:"id" db:"id"`
	StudentID             string           `json:"studentId" db:"student_id"`
	CourseID              string           `json:"courseId" db:"course_id"`
	Date                  time.Time        `json:"date" db:"date"`
	Status                AttendanceStatus `json:"status" db:"status"`
	ArrivalTime           string           `json:"arrivalTime,omitempty" db:"arrival_time"`
	Notes                 string           `json:"notes,omitempty" db:"notes"`
	JustificationDocument string           `json:"justificationDocument,omitempty" db:"justification_document"`
	RecordedBy            string           `json:"recordedBy" db:"recorded_by"`
	CreatedAt             time.Time        `json:"createdAt" db:"created_at"`
	UpdatedBy             string           `json:"updatedBy" db:"updated_by"`
	UpdatedAt             time.Time        `json:"updatedAt" db:"updated_at"`
}

// AttendanceInput carries the caller-supplied fields for one record.
type AttendanceInput struct {
	StudentID             string
	CourseID              string
	Date                  time.Time
	Status                AttendanceStatus
	ArrivalTime           string
	Notes                 string
	JustificationDocument string
}

// NewAttendance builds a validated attendance record or returns the first
// violated rule as a ValidationError.
func NewAttendance(in AttendanceInput, recordedBy string) (*Attendance, error) {
	if strings.TrimSpace(in.StudentID) == "" {
		return nil, apperrors.NewValidationError("studentId", "is required")
	}
	if strings.TrimSpace(in.CourseID) == "" {
		return nil, apperrors.NewValidationError("courseId", "is required")
	}
	if err := validateAttendanceDate(in.Date); err != nil {
		return nil, err
	}
	if err := validateAttendanceStatusFields(in.Status, in.ArrivalTime, in.Notes); err != nil {
		return nil, err
	}
	if strings.TrimSpace(recordedBy) == "" {
		return nil, apperrors.NewValidationError("recordedBy", "is required")
	}

	now := time.Now().UTC()
	return &Attendance{
		ID:                    uuid.NewString(),
		StudentID:             in.StudentID,
		CourseID:              in.CourseID,
		Date:                  dayOf(in.Date),
		Status:                in.Status,
		ArrivalTime:           in.ArrivalTime,
		Notes:                 strings.TrimSpace(in.Notes),
		JustificationDocument: strings.TrimSpace(in.JustificationDocument),
		RecordedBy:            recordedBy,
		CreatedAt:             now,
		UpdatedBy:             recordedBy,
		UpdatedAt:             now,
	}, nil
}

// WithCorrection builds a validated copy with corrected status, arrival
// time and notes. Student, course and date are deliberately untouchable.
func (a *Attendance) WithCorrection(status AttendanceStatus, arrivalTime, notes, updatedBy string) (*Attendance, error) {
	if err := validateAttendanceStatusFields(status, arrivalTime, notes); err != nil {
		return nil, err
	}

	corrected := *a
	corrected.Status = status
	corrected.ArrivalTime = arrivalTime
	corrected.Notes = strings.TrimSpace(notes)
	corrected.UpdatedBy = updatedBy
	corrected.UpdatedAt = time.Now().UTC()
	return &corrected, nil
}

func validateAttendanceDate(date time.Time) error {
	if date.IsZero() {
		return apperrors.NewValidationError("date", "is required")
	}
	now := time.Now().UTC()
	day := dayOf(date)
	if day.After(dayOf(now)) {
		return apperrors.NewValidationError("date", "cannot be in the future")
	}
	if day.Before(dayOf(now.AddDate(-1, 0, 0))) {
		return apperrors.NewValidationError("date", "cannot be more than one year old")
	}
	return nil
}

func validateAttendanceStatusFields(status AttendanceStatus, arrivalTime, notes string) error {
	if !status.Valid() {
		return apperrors.NewValidationError("status", "must be one of PRESENT, ABSENT, LATE, JUSTIFIED")
	}
	if status == AttendanceStatusLate {
		if arrivalTime == "" {
			return apperrors.NewValidationError("arrivalTime", "is required for LATE records")
		}
		if !validation.IsTimeOfDay(arrivalTime) {
			return apperrors.NewValidationError("arrivalTime", "must be a 24-hour HH:mm time")
		}
	} else if arrivalTime != "" {
		return apperrors.NewValidationError("arrivalTime", "is only allowed for LATE records")
	}
	if status == AttendanceStatusJustified && len(strings.TrimSpace(notes)) < AttendanceNotesMinLength {
		return apperrors.NewValidationError("notes", "must be at least 10 characters for JUSTIFIED records")
	}
	return nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AttendanceSummary aggregates attendance records for a student or course.
type AttendanceSummary struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Justified      int     `json:"justified"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// ComputeRate fills AttendanceRate as (PRESENT+LATE)/total*100 rounded to
// two decimals. LATE counts toward attended; an empty set yields 0.
func (s *AttendanceSummary) ComputeRate() {
	if s.Total == 0 {
		s.AttendanceRate = 0
		return
	}
	rate := float64(s.Present+s.Late) / float64(s.Total) * 100
	s.AttendanceRate = math.Round(rate*100) / 100
}

// AttendanceFilter scopes attendance listing queries.
type AttendanceFilter struct {
	StudentID string
	CourseID  string
	Status    AttendanceStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

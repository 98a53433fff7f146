package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// CourseStatus represents the lifecycle state of a course.
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "ACTIVE"
	CourseStatusInactive  CourseStatus = "INACTIVE"
	CourseStatusFinalized CourseStatus = "FINALIZED"
)

// Valid returns true when the status is a supported value.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusActive, CourseStatusInactive, CourseStatusFinalized:
		return true
	default:
		return false
	}
}

// Subject enumerates the school subjects a course can teach.
type Subject string

const (
	SubjectMathematics       Subject = "MATHEMATICS"
	SubjectLanguage          Subject = "LANGUAGE"
	SubjectScience           Subject = "SCIENCE"
	SubjectHistory           Subject = "HISTORY"
	SubjectEnglish           Subject = "ENGLISH"
	SubjectPhysicalEducation Subject = "PHYSICAL_EDUCATION"
	SubjectArts              Subject = "ARTS"
	SubjectMusic             Subject = "MUSIC"
	SubjectTechnology        Subject = "TECHNOLOGY"
	SubjectReligion          Subject = "RELIGION"
)

// Valid returns true when the subject is a supported value.
func (s Subject) Valid() bool {
	switch s {
	case SubjectMathematics, SubjectLanguage, SubjectScience, SubjectHistory,
		SubjectEnglish, SubjectPhysicalEducation, SubjectArts, SubjectMusic,
		SubjectTechnology, SubjectReligion:
		return true
	default:
		return false
	}
}

// Weekday enumerates the school days a schedule slot can fall on.
type Weekday string

const (
	WeekdayMonday    Weekday = "MONDAY"
	WeekdayTuesday   Weekday = "TUESDAY"
	WeekdayWednesday Weekday = "WEDNESDAY"
	WeekdayThursday  Weekday = "THURSDAY"
	WeekdayFriday    Weekday = "FRIDAY"
)

// Valid returns true when the weekday is a supported value.
func (d Weekday) Valid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday:
		return true
	default:
		return false
	}
}

// ScheduleSlot is one weekly session of a course.
type ScheduleSlot struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}

// Academic year bounds accepted by the course factory.
const (
	CourseMinAcademicYear = 2000
	CourseMaxAcademicYear = 2100
)

// Course is an immutable, validated course record. FINALIZED courses never
// change again; the finalize transition is the course's soft delete.
type Course struct {
	ID            string         `json:"id" db:"id"`
	Code          string         `json:"code" db:"code"`
	Name          string         `json:"name" db:"name"`
	Grade         int            `json:"grade" db:"grade"`
	Section       string         `json:"section" db:"section"`
	Subject       Subject        `json:"subject" db:"subject"`
	TeacherName   string         `json:"teacherName" db:"teacher_name"`
	TeacherEmail  string         `json:"teacherEmail" db:"teacher_email"`
	Schedule      []ScheduleSlot `json:"schedule"`
	Capacity      int            `json:"capacity" db:"capacity"`
	EnrolledCount int            `json:"enrolledCount" db:"enrolled_count"`
	AcademicYear  int            `json:"academicYear" db:"academic_year"`
	Semester      int            `json:"semester" db:"semester"`
	Status        CourseStatus   `json:"status" db:"status"`
	CreatedBy     string         `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedBy     string         `json:"updatedBy" db:"updated_by"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

// CourseInput carries the caller-supplied fields for building a course.
type CourseInput struct {
	Code          string
	Name          string
	Grade         int
	Section       string
	Subject       Subject
	TeacherName   string
	TeacherEmail  string
	Schedule      []ScheduleSlot
	Capacity      int
	EnrolledCount int
	AcademicYear  int
	Semester      int
}

// NewCourse builds a validated, ACTIVE course or returns the first violated
// rule as a ValidationError.
func NewCourse(in CourseInput, createdBy string) (*Course, error) {
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Course{
		ID:            uuid.NewString(),
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Grade:         in.Grade,
		Section:       strings.TrimSpace(in.Section),
		Subject:       in.Subject,
		TeacherName:   strings.TrimSpace(in.TeacherName),
		TeacherEmail:  strings.TrimSpace(in.TeacherEmail),
		Schedule:      in.Schedule,
		Capacity:      in.Capacity,
		EnrolledCount: in.EnrolledCount,
		AcademicYear:  in.AcademicYear,
		Semester:      in.Semester,
		Status:        CourseStatusActive,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedBy:     createdBy,
		UpdatedAt:     now,
	}, nil
}

// WithUpdate builds a validated replacement for an existing course,
// preserving identity and creation audit fields.
func (c *Course) WithUpdate(in CourseInput, status CourseStatus, updatedBy string) (*Course, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be one of ACTIVE, INACTIVE, FINALIZED")
	}
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}

	updated := *c
	updated.Code = strings.TrimSpace(in.Code)
	updated.Name = strings.TrimSpace(in.Name)
	updated.Grade = in.Grade
	updated.Section = strings.TrimSpace(in.Section)
	updated.Subject = in.Subject
	updated.TeacherName = strings.TrimSpace(in.TeacherName)
	updated.TeacherEmail = strings.TrimSpace(in.TeacherEmail)
	updated.Schedule = in.Schedule
	updated.Capacity = in.Capacity
	updated.EnrolledCount = in.EnrolledCount
	updated.AcademicYear = in.AcademicYear
	updated.Semester = in.Semester
	updated.Status = status
	updated.UpdatedBy = updatedBy
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// Finalized builds the FINALIZED terminal copy of the course.
func (c *Course) Finalized(updatedBy string) *Course {
	finalized := *c
	finalized.Status = CourseStatusFinalized
	finalized.UpdatedBy = updatedBy
	finalized.UpdatedAt = time.Now().UTC()
	return &finalized
}

// IsFinalized reports whether the course reached its terminal state.
func (c *Course) IsFinalized() bool {
	return c.Status == CourseStatusFinalized
}

// HasCapacity reports whether another student fits on the roster.
func (c *Course) HasCapacity() bool {
	return c.EnrolledCount < c.Capacity
}

func validateCourseInput(in CourseInput) error {
	if !validation.IsCourseCode(strings.TrimSpace(in.Code)) {
		return apperrors.NewValidationError("code", "must match the SUBJECT-grade-year pattern, e.g. MAT-8-2025")
	}
	if !validation.IsName(in.Name) {
		return apperrors.NewValidationError("name", "must be between 2 and 100 characters")
	}
	if in.Grade < 1 || in.Grade > 12 {
		return apperrors.NewValidationError("grade", "must be between 1 and 12")
	}
	if strings.TrimSpace(in.Section) == "" {
		return apperrors.NewValidationError("section", "is required")
	}
	if !in.Subject.Valid() {
		return apperrors.NewValidationError("subject", "is not a supported subject")
	}
	if !validation.IsName(in.TeacherName) {
		return apperrors.NewValidationError("teacherName", "must be between 2 and 100 characters")
	}
	if !validation.IsEmail(strings.TrimSpace(in.TeacherEmail)) {
		return apperrors.NewValidationError("teacherEmail", "must be a valid email address")
	}
	if len(in.Schedule) == 0 {
		return apperrors.NewValidationError("schedule", "must contain at least one weekly slot")
	}
	for i, slot := range in.Schedule {
		if err := validateScheduleSlot(slot); err != nil {
			return apperrors.NewValidationError("schedule", fmt.Sprintf("slot %d: %v", i, err))
		}
	}
	if in.Capacity < 1 {
		return apperrors.NewValidationError("capacity", "must be at least 1")
	}
	if in.EnrolledCount < 0 || in.EnrolledCount > in.Capacity {
		return apperrors.NewValidationError("enrolledCount", "must be between 0 and capacity")
	}
	if in.AcademicYear < CourseMinAcademicYear || in.AcademicYear > CourseMaxAcademicYear {
		return apperrors.NewValidationError("academicYear", "must be a plausible four-digit year")
	}
	if in.Semester != 1 && in.Semester != 2 {
		return apperrors.NewValidationError("semester", "must be 1 or 2")
	}
	return nil
}

func validateScheduleSlot(slot ScheduleSlot) error {
	if !slot.Day.Valid() {
		return errors.New("day must be a school weekday")
	}
	start, err := validation.MinutesOfDay(slot.StartTime)
	if err != nil {
		return errors.New("startTime must be HH:mm")
	}
	end, err := validation.MinutesOfDay(slot.EndTime)
	if err != nil {
		return errors.New("endTime must be HH:mm")
	}
	if start >= end {
		return errors.New("startTime must be before endTime")
	}
	return nil
}

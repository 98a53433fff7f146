package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// StudentStatus represents the lifecycle state of a student record.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "ACTIVE"
	StudentStatusInactive  StudentStatus = "INACTIVE"
	StudentStatusWithdrawn StudentStatus = "WITHDRAWN"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusWithdrawn:
		return true
	default:
		return false
	}
}

// Student age bounds, checked at validation time.
const (
	StudentMinAge = 4
	StudentMaxAge = 25
)

// EmergencyContact is the required contact sub-record embedded in a student.
type EmergencyContact struct {
	Name         string `json:"name" db:"emergency_contact_name"`
	Phone        string `json:"phone" db:"emergency_contact_phone"`
	Relationship string `json:"relationship" db:"emergency_contact_relationship"`
}

// Student is an immutable, validated student record. Instances only come out
// of NewStudent or WithUpdate; an invalid student is unrepresentable.
type Student struct {
	ID               string           `json:"id" db:"id"`
	NationalID       string           `json:"nationalId" db:"national_id"`
	FirstName        string           `json:"firstName" db:"first_name"`
	LastName         string           `json:"lastName" db:"last_name"`
	Email            string           `json:"email" db:"email"`
	Phone            string           `json:"phone" db:"phone"`
	BirthDate        time.Time        `json:"birthDate" db:"birth_date"`
	Grade            int              `json:"grade" db:"grade"`
	Section          string           `json:"section" db:"section"`
	Address          string           `json:"address" db:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Status           StudentStatus    `json:"status" db:"status"`
	EnrollmentDate   time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	CreatedBy        string           `json:"createdBy" db:"created_by"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedBy        string           `json:"updatedBy" db:"updated_by"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// StudentInput carries the caller-supplied fields for building a student.
type StudentInput struct {
	NationalID       string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	BirthDate        time.Time
	Grade            int
	Section          string
	Address          string
	EmergencyContact EmergencyContact
	EnrollmentDate   time.Time
}

// NewStudent builds a validated, ACTIVE student or returns the first
// violated rule as a ValidationError.
func NewStudent(in StudentInput, createdBy string) (*Student, error) {
	if err := validateStudentInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Student{
		ID:               uuid.NewString(),
		NationalID:       strings.ToUpper(strings.TrimSpace(in.NationalID)),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		BirthDate:        in.BirthDate.UTC(),
		Grade:            in.Grade,
		Section:          strings.TrimSpace(in.Section),
		Address:          strings.TrimSpace(in.Address),
		EmergencyContact: in.EmergencyContact,
		Status:           StudentStatusActive,
		EnrollmentDate:   in.EnrollmentDate.UTC(),
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedBy:        createdBy,
		UpdatedAt:        now,
	}, nil
}

// WithUpdate builds a validated replacement for an existing student. The
// merged input goes through the same rules as creation; identity and
// creation audit fields are preserved.
func (s *Student) WithUpdate(in StudentInput, status StudentStatus, updatedBy string) (*Student, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be one of ACTIVE, INACTIVE, WITHDRAWN")
	}
	if err := validateStudentInput(in); err != nil {
		return nil, err
	}

	updated := *s
	updated.NationalID = strings.ToUpper(strings.TrimSpace(in.NationalID))
	updated.FirstName = strings.TrimSpace(in.FirstName)
	updated.LastName = strings.TrimSpace(in.LastName)
	updated.Email = strings.TrimSpace(in.Email)
	updated.Phone = strings.TrimSpace(in.Phone)
	updated.BirthDate = in.BirthDate.UTC()
	updated.Grade = in.Grade
	updated.Section = strings.TrimSpace(in.Section)
	updated.Address = strings.TrimSpace(in.Address)
	updated.EmergencyContact = in.EmergencyContact
	updated.EnrollmentDate = in.EnrollmentDate.UTC()
	updated.Status = status
	updated.UpdatedBy = updatedBy
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// Age returns the student's age in full years at the given instant.
func (s *Student) Age(at time.Time) int {
	return ageAt(s.BirthDate, at)
}

// IsWithdrawn reports whether the student has been soft-deleted.
func (s *Student) IsWithdrawn() bool {
	return s.Status == StudentStatusWithdrawn
}

// FullName returns the display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func ageAt(birthDate, at time.Time) int {
	years := at.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

func validateStudentInput(in StudentInput) error {
	if err := validation.ValidateNationalID(strings.TrimSpace(in.NationalID)); err != nil {
		return apperrors.NewValidationError("nationalId", err.Error())
	}
	if !validation.IsName(in.FirstName) {
		return apperrors.NewValidationError("firstName", "must be between 2 and 100 characters")
	}
	if !validation.IsName(in.LastName) {
		return apperrors.NewValidationError("lastName", "must be between 2 and 100 characters")
	}
	if !validation.IsEmail(strings.TrimSpace(in.Email)) {
		return apperrors.NewValidationError("email", "must be a valid email address")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return apperrors.NewValidationError("phone", "is required")
	}
	if in.BirthDate.IsZero() {
		return apperrors.NewValidationError("birthDate", "is required")
	}
	now := time.Now().UTC()
	if age := ageAt(in.BirthDate.UTC(), now); age < StudentMinAge || age > StudentMaxAge {
		return apperrors.NewValidationError("birthDate", "student age must be between 4 and 25")
	}
	if in.Grade < 1 || in.Grade > 12 {
		return apperrors.NewValidationError("grade", "must be between 1 and 12")
	}
	if strings.TrimSpace(in.Section) == "" {
		return apperrors.NewValidationError("section", "is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return apperrors.NewValidationError("address", "is required")
	}
	if strings.TrimSpace(in.EmergencyContact.Name) == "" {
		return apperrors.NewValidationError("emergencyContact.name", "is required")
	}
	if strings.TrimSpace(in.EmergencyContact.Phone) == "" {
		return apperrors.NewValidationError("emergencyContact.phone", "is required")
	}
	if strings.TrimSpace(in.EmergencyContact.Relationship) == "" {
		return apperrors.NewValidationError("emergencyContact.relationship", "is required")
	}
	if in.EnrollmentDate.IsZero() {
		return apperrors.NewValidationError("enrollmentDate", "is required")
	}
	if in.EnrollmentDate.After(now) {
		return apperrors.NewValidationError("enrollmentDate", "cannot be in the future")
	}
	return nil
}

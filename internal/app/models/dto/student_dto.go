package dto

import (
	"github.com/emre/scholaris/internal/app/models"
)

// EmergencyContactDTO mirrors the required contact sub-record.
type EmergencyContactDTO struct {
	Name         string `json:"name" binding:"required" example:"Maria Soto"`
	Phone        string `json:"phone" binding:"required" example:"+56911112222"`
	Relationship string `json:"relationship" binding:"required" example:"mother"`
}

// CreateStudentRequest is the payload for registering a student.
type CreateStudentRequest struct {
	NationalID       string              `json:"nationalId" binding:"required" example:"12345678-5"`
	FirstName        string              `json:"firstName" binding:"required,min=2,max=100" example:"Ana"`
	LastName         string              `json:"lastName" binding:"required,min=2,max=100" example:"Soto"`
	Email            string              `json:"email" binding:"required,email" example:"ana.soto@school.cl"`
	Phone            string              `json:"phone" binding:"required" example:"+56933334444"`
	BirthDate        string              `json:"birthDate" binding:"required" example:"2012-04-18"`
	Grade            int                 `json:"grade" binding:"required,min=1,max=12" example:"8"`
	Section          string              `json:"section" binding:"required" example:"A"`
	Address          string              `json:"address" binding:"required" example:"Av. Siempre Viva 742"`
	EmergencyContact EmergencyContactDTO `json:"emergencyContact" binding:"required"`
	EnrollmentDate   string              `json:"enrollmentDate" binding:"required" example:"2026-03-01"`
}

// ToInput parses the wire shape into a factory input.
func (r CreateStudentRequest) ToInput() (models.StudentInput, error) {
	birthDate, err := parseDate(r.BirthDate)
	if err != nil {
		return models.StudentInput{}, err
	}
	enrollmentDate, err := parseDate(r.EnrollmentDate)
	if err != nil {
		return models.StudentInput{}, err
	}
	return models.StudentInput{
		NationalID: r.NationalID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		BirthDate:  birthDate,
		Grade:      r.Grade,
		Section:    r.Section,
		Address:    r.Address,
		EmergencyContact: models.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		},
		EnrollmentDate: enrollmentDate,
	}, nil
}

// UpdateStudentRequest is the partial-patch payload for a student. Nil
// fields keep their stored value; the merged result is re-validated.
type UpdateStudentRequest struct {
	NationalID       *string              `json:"nationalId,omitempty"`
	FirstName        *string              `json:"firstName,omitempty"`
	LastName         *string              `json:"lastName,omitempty"`
	Email            *string              `json:"email,omitempty"`
	Phone            *string              `json:"phone,omitempty"`
	BirthDate        *string              `json:"birthDate,omitempty"`
	Grade            *int                 `json:"grade,omitempty"`
	Section          *string              `json:"section,omitempty"`
	Address          *string              `json:"address,omitempty"`
	EmergencyContact *EmergencyContactDTO `json:"emergencyContact,omitempty"`
	EnrollmentDate   *string              `json:"enrollmentDate,omitempty"`
	Status           *string              `json:"status,omitempty" example:"INACTIVE"`
}

// MergeInto overlays the patch onto the stored student and returns the
// merged factory input plus the target status.
func (r UpdateStudentRequest) MergeInto(existing *models.Student) (models.StudentInput, models.StudentStatus, error) {
	in := models.StudentInput{
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
	}

	if r.NationalID != nil {
		in.NationalID = *r.NationalID
	}
	if r.FirstName != nil {
		in.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		in.LastName = *r.LastName
	}
	if r.Email != nil {
		in.Email = *r.Email
	}
	if r.Phone != nil {
		in.Phone = *r.Phone
	}
	if r.BirthDate != nil {
		birthDate, err := parseDate(*r.BirthDate)
		if err != nil {
			return models.StudentInput{}, "", err
		}
		in.BirthDate = birthDate
	}
	if r.Grade != nil {
		in.Grade = *r.Grade
	}
	if r.Section != nil {
		in.Section = *r.Section
	}
	if r.Address != nil {
		in.Address = *r.Address
	}
	if r.EmergencyContact != nil {
		in.EmergencyContact = models.EmergencyContact{
			Name:         r.EmergencyContact.Name,
			Phone:        r.EmergencyContact.Phone,
			Relationship: r.EmergencyContact.Relationship,
		}
	}
	if r.EnrollmentDate != nil {
		enrollmentDate, err := parseDate(*r.EnrollmentDate)
		if err != nil {
			return models.StudentInput{}, "", err
		}
		in.EnrollmentDate = enrollmentDate
	}

	status := existing.Status
	if r.Status != nil {
		status = models.StudentStatus(*r.Status)
	}
	return in, status, nil
}

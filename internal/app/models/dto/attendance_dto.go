package dto

import (
	"github.com/emre/scholaris/internal/app/models"
)

// RecordAttendanceRequest is the payload for one attendance record.
type RecordAttendanceRequest struct {
	StudentID             string `json:"studentId" binding:"required" example:"6a9dd2f1-6f30-4e67-91fe-1b1984a94201"`
	CourseID              string `json:"courseId" binding:"required" example:"0b7c53f2-9f06-4d3e-8f2a-40a4332fca7b"`
	Date                  string `json:"date" binding:"required" example:"2026-08-27"`
	Status                string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE JUSTIFIED" example:"LATE"`
	ArrivalTime           string `json:"arrivalTime,omitempty" example:"08:45"`
	Notes                 string `json:"notes,omitempty"`
	JustificationDocument string `json:"justificationDocument,omitempty"`
}

// ToInput parses the wire shape into a factory input.
func (r RecordAttendanceRequest) ToInput() (models.AttendanceInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.AttendanceInput{}, err
	}
	return models.AttendanceInput{
		StudentID:             r.StudentID,
		CourseID:              r.CourseID,
		Date:                  date,
		Status:                models.AttendanceStatus(r.Status),
		ArrivalTime:           r.ArrivalTime,
		Notes:                 r.Notes,
		JustificationDocument: r.JustificationDocument,
	}, nil
}

// CorrectAttendanceRequest corrects status, arrival time and notes of an
// existing record. The (student, course, date) identity never changes.
type CorrectAttendanceRequest struct {
	Status      string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE JUSTIFIED" example:"JUSTIFIED"`
	ArrivalTime string `json:"arrivalTime,omitempty" example:"08:45"`
	Notes       string `json:"notes,omitempty" example:"medical certificate presented"`
}

// BulkAttendanceEntryRequest is one roster entry of a bulk registration.
type BulkAttendanceEntryRequest struct {
	StudentID   string `json:"studentId" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE JUSTIFIED"`
	ArrivalTime string `json:"arrivalTime,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// BulkRegisterRequest registers attendance for a whole class roster.
type BulkRegisterRequest struct {
	CourseID string                       `json:"courseId" binding:"required"`
	Date     string                       `json:"date" binding:"required" example:"2026-08-27"`
	Entries  []BulkAttendanceEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// BulkFailureDTO reports one skipped roster entry.
type BulkFailureDTO struct {
	StudentID string `json:"studentId"`
	Reason    string `json:"reason"`
}

// BulkRegisterResponse carries the partial-success outcome of a bulk
// registration: the created records plus the entries that were skipped.
type BulkRegisterResponse struct {
	Created  []*models.Attendance `json:"created"`
	Failures []BulkFailureDTO     `json:"failures"`
	Total    int                  `json:"total"`
}

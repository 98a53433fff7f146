package dto

import (
	"github.com/emre/scholaris/internal/app/models"
)

// ScheduleSlotDTO mirrors one weekly session of a course.
type ScheduleSlotDTO struct {
	Day       string `json:"day" binding:"required" example:"MONDAY"`
	StartTime string `json:"startTime" binding:"required" example:"08:30"`
	EndTime   string `json:"endTime" binding:"required" example:"09:15"`
}

// CreateCourseRequest is the payload for opening a course.
type CreateCourseRequest struct {
	Code          string            `json:"code" binding:"required" example:"MAT-8-2026"`
	Name          string            `json:"name" binding:"required,min=2,max=100" example:"Mathematics 8th Grade"`
	Grade         int               `json:"grade" binding:"required,min=1,max=12" example:"8"`
	Section       string            `json:"section" binding:"required" example:"A"`
	Subject       string            `json:"subject" binding:"required" example:"MATHEMATICS"`
	TeacherName   string            `json:"teacherName" binding:"required,min=2,max=100" example:"Carlos Reyes"`
	TeacherEmail  string            `json:"teacherEmail" binding:"required,email" example:"c.reyes@school.cl"`
	Schedule      []ScheduleSlotDTO `json:"schedule" binding:"required,min=1,dive"`
	Capacity      int               `json:"capacity" binding:"required,min=1" example:"35"`
	EnrolledCount int               `json:"enrolledCount" binding:"min=0" example:"0"`
	AcademicYear  int               `json:"academicYear" binding:"required" example:"2026"`
	Semester      int               `json:"semester" binding:"required,oneof=1 2" example:"1"`
}

// ToInput converts the wire shape into a factory input.
func (r CreateCourseRequest) ToInput() models.CourseInput {
	return models.CourseInput{
		Code:          r.Code,
		Name:          r.Name,
		Grade:         r.Grade,
		Section:       r.Section,
		Subject:       models.Subject(r.Subject),
		TeacherName:   r.TeacherName,
		TeacherEmail:  r.TeacherEmail,
		Schedule:      toScheduleSlots(r.Schedule),
		Capacity:      r.Capacity,
		EnrolledCount: r.EnrolledCount,
		AcademicYear:  r.AcademicYear,
		Semester:      r.Semester,
	}
}

// UpdateCourseRequest is the partial-patch payload for a course. Nil
// fields keep their stored value; the merged result is re-validated.
type UpdateCourseRequest struct {
	Code          *string            `json:"code,omitempty"`
	Name          *string            `json:"name,omitempty"`
	Grade         *int               `json:"grade,omitempty"`
	Section       *string            `json:"section,omitempty"`
	Subject       *string            `json:"subject,omitempty"`
	TeacherName   *string            `json:"teacherName,omitempty"`
	TeacherEmail  *string            `json:"teacherEmail,omitempty"`
	Schedule      *[]ScheduleSlotDTO `json:"schedule,omitempty"`
	Capacity      *int               `json:"capacity,omitempty"`
	EnrolledCount *int               `json:"enrolledCount,omitempty"`
	AcademicYear  *int               `json:"academicYear,omitempty"`
	Semester      *int               `json:"semester,omitempty"`
	Status        *string            `json:"status,omitempty" example:"INACTIVE"`
}

// MergeInto overlays the patch onto the stored course and returns the
// merged factory input plus the target status.
func (r UpdateCourseRequest) MergeInto(existing *models.Course) (models.CourseInput, models.CourseStatus) {
	in := models.CourseInput{
		Code:          existing.Code,
		Name:          existing.Name,
		Grade:         existing.Grade,
		Section:       existing.Section,
		Subject:       existing.Subject,
		TeacherName:   existing.TeacherName,
		TeacherEmail:  existing.TeacherEmail,
		Schedule:      existing.Schedule,
		Capacity:      existing.Capacity,
		EnrolledCount: existing.EnrolledCount,
		AcademicYear:  existing.AcademicYear,
		Semester:      existing.Semester,
	}

	if r.Code != nil {
		in.Code = *r.Code
	}
	if r.Name != nil {
		in.Name = *r.Name
	}
	if r.Grade != nil {
		in.Grade = *r.Grade
	}
	if r.Section != nil {
		in.Section = *r.Section
	}
	if r.Subject != nil {
		in.Subject = models.Subject(*r.Subject)
	}
	if r.TeacherName != nil {
		in.TeacherName = *r.TeacherName
	}
	if r.TeacherEmail != nil {
		in.TeacherEmail = *r.TeacherEmail
	}
	if r.Schedule != nil {
		in.Schedule = toScheduleSlots(*r.Schedule)
	}
	if r.Capacity != nil {
		in.Capacity = *r.Capacity
	}
	if r.EnrolledCount != nil {
		in.EnrolledCount = *r.EnrolledCount
	}
	if r.AcademicYear != nil {
		in.AcademicYear = *r.AcademicYear
	}
	if r.Semester != nil {
		in.Semester = *r.Semester
	}

	status := existing.Status
	if r.Status != nil {
		status = models.CourseStatus(*r.Status)
	}
	return in, status
}

func toScheduleSlots(slots []ScheduleSlotDTO) []models.ScheduleSlot {
	converted := make([]models.ScheduleSlot, len(slots))
	for i, slot := range slots {
		converted[i] = models.ScheduleSlot{
			Day:       models.Weekday(slot.Day),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}
	return converted
}

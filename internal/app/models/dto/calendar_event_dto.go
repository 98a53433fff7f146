package dto

import (
	"github.com/emre/scholaris/internal/app/models"
)

// CreateCalendarEventRequest is the payload for scheduling an event.
type CreateCalendarEventRequest struct {
	Title          string   `json:"title" binding:"required,min=3,max=200" example:"Parent-teacher meeting"`
	Description    string   `json:"description,omitempty"`
	EventType      string   `json:"eventType" binding:"required" example:"MEETING"`
	StartDate      string   `json:"startDate" binding:"required" example:"2026-09-14"`
	EndDate        string   `json:"endDate" binding:"required" example:"2026-09-14"`
	IsAllDay       bool     `json:"isAllDay" example:"false"`
	StartTime      string   `json:"startTime,omitempty" example:"18:00"`
	EndTime        string   `json:"endTime,omitempty" example:"19:30"`
	Location       string   `json:"location,omitempty" example:"Main hall"`
	CourseID       string   `json:"courseId,omitempty"`
	OrganizerEmail string   `json:"organizerEmail" binding:"required,email" example:"head@school.cl"`
	Attendees      []string `json:"attendees,omitempty"`
}

// ToInput parses the wire shape into a factory input.
func (r CreateCalendarEventRequest) ToInput() (models.CalendarEventInput, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return models.CalendarEventInput{}, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return models.CalendarEventInput{}, err
	}
	return models.CalendarEventInput{
		Title:          r.Title,
		Description:    r.Description,
		EventType:      models.EventType(r.EventType),
		StartDate:      startDate,
		EndDate:        endDate,
		IsAllDay:       r.IsAllDay,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Location:       r.Location,
		CourseID:       r.CourseID,
		OrganizerEmail: r.OrganizerEmail,
		Attendees:      r.Attendees,
	}, nil
}

// UpdateCalendarEventRequest is the partial-patch payload for an event.
type UpdateCalendarEventRequest struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	EventType      *string   `json:"eventType,omitempty"`
	StartDate      *string   `json:"startDate,omitempty"`
	EndDate        *string   `json:"endDate,omitempty"`
	IsAllDay       *bool     `json:"isAllDay,omitempty"`
	StartTime      *string   `json:"startTime,omitempty"`
	EndTime        *string   `json:"endTime,omitempty"`
	Location       *string   `json:"location,omitempty"`
	CourseID       *string   `json:"courseId,omitempty"`
	OrganizerEmail *string   `json:"organizerEmail,omitempty"`
	Attendees      *[]string `json:"attendees,omitempty"`
	Status         *string   `json:"status,omitempty" example:"CONFIRMED"`
}

// MergeInto overlays the patch onto the stored event and returns the
// merged factory input plus the target status.
func (r UpdateCalendarEventRequest) MergeInto(existing *models.CalendarEvent) (models.CalendarEventInput, models.EventStatus, error) {
	in := models.CalendarEventInput{
		Title:          existing.Title,
		Description:    existing.Description,
		EventType:      existing.EventType,
		StartDate:      existing.StartDate,
		EndDate:        existing.EndDate,
		IsAllDay:       existing.IsAllDay,
		StartTime:      existing.StartTime,
		EndTime:        existing.EndTime,
		Location:       existing.Location,
		CourseID:       existing.CourseID,
		OrganizerEmail: existing.OrganizerEmail,
		Attendees:      existing.Attendees,
	}

	if r.Title != nil {
		in.Title = *r.Title
	}
	if r.Description != nil {
		in.Description = *r.Description
	}
	if r.EventType != nil {
		in.EventType = models.EventType(*r.EventType)
	}
	if r.StartDate != nil {
		startDate, err := parseDate(*r.StartDate)
		if err != nil {
			return models.CalendarEventInput{}, "", err
		}
		in.StartDate = startDate
	}
	if r.EndDate != nil {
		endDate, err := parseDate(*r.EndDate)
		if err != nil {
			return models.CalendarEventInput{}, "", err
		}
		in.EndDate = endDate
	}
	if r.IsAllDay != nil {
		in.IsAllDay = *r.IsAllDay
	}
	if r.StartTime != nil {
		in.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		in.EndTime = *r.EndTime
	}
	if r.Location != nil {
		in.Location = *r.Location
	}
	if r.CourseID != nil {
		in.CourseID = *r.CourseID
	}
	if r.OrganizerEmail != nil {
		in.OrganizerEmail = *r.OrganizerEmail
	}
	if r.Attendees != nil {
		in.Attendees = *r.Attendees
	}

	status := existing.Status
	if r.Status != nil {
		status = models.EventStatus(*r.Status)
	}
	return in, status, nil
}

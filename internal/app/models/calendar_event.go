package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// EventType categorizes calendar entries.
type EventType string

const (
	EventTypeClass    EventType = "CLASS"
	EventTypeExam     EventType = "EXAM"
	EventTypeMeeting  EventType = "MEETING"
	EventTypeHoliday  EventType = "HOLIDAY"
	EventTypeActivity EventType = "ACTIVITY"
	EventTypeDeadline EventType = "DEADLINE"
	EventTypeOther    EventType = "OTHER"
)

// Valid returns true when the event type is a supported value.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeClass, EventTypeExam, EventTypeMeeting, EventTypeHoliday,
		EventTypeActivity, EventTypeDeadline, EventTypeOther:
		return true
	default:
		return false
	}
}

// EventStatus represents the lifecycle state of a calendar event.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusConfirmed EventStatus = "CONFIRMED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// Valid returns true when the status is a supported value.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusScheduled, EventStatusConfirmed, EventStatusCancelled, EventStatusCompleted:
		return true
	default:
		return false
	}
}

// Calendar event temporal bounds.
const (
	EventMaxAttendees    = 500
	EventMaxSpanYears    = 1
	EventMaxPastYears    = 5
	EventTitleMinLength  = 3
	EventTitleMaxLength  = 200
)

// CalendarEvent is an immutable, validated calendar entry. COMPLETED
// events never change again.
type CalendarEvent struct {
	ID             string      `json:"id" db:"id"`
	Title          string      `json:"title" db:"title"`
	Description    string      `json:"description" db:"description"`
	EventType      EventType   `json:"eventType" db:"event_type"`
	StartDate      time.Time   `json:"startDate" db:"start_date"`
	EndDate        time.Time   `json:"endDate" db:"end_date"`
	IsAllDay       bool        `json:"isAllDay" db:"is_all_day"`
	StartTime      string      `json:"startTime,omitempty" db:"start_time"`
	EndTime        string      `json:"endTime,omitempty" db:"end_time"`
	Location       string      `json:"location,omitempty" db:"location"`
	CourseID       string      `json:"courseId,omitempty" db:"course_id"`
	Status         EventStatus `json:"status" db:"status"`
	OrganizerEmail string      `json:"organizerEmail" db:"organizer_email"`
	Attendees      []string    `json:"attendees"`
	CreatedBy      string      `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedBy      string      `json:"updatedBy" db:"updated_by"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
}

// CalendarEventInput carries the caller-supplied fields for an event.
type CalendarEventInput struct {
	Title          string
	Description    string
	EventType      EventType
	StartDate      time.Time
	EndDate        time.Time
	IsAllDay       bool
	StartTime      string
	EndTime        string
	Location       string
	CourseID       string
	OrganizerEmail string
	Attendees      []string
}

// NewCalendarEvent builds a validated, SCHEDULED event or returns the
// first violated rule as a ValidationError.
func NewCalendarEvent(in CalendarEventInput, createdBy string) (*CalendarEvent, error) {
	if err := validateCalendarEventInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &CalendarEvent{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		EventType:      in.EventType,
		StartDate:      dayOf(in.StartDate),
		EndDate:        dayOf(in.EndDate),
		IsAllDay:       in.IsAllDay,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Location:       strings.TrimSpace(in.Location),
		CourseID:       in.CourseID,
		Status:         EventStatusScheduled,
		OrganizerEmail: strings.TrimSpace(in.OrganizerEmail),
		Attendees:      in.Attendees,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedBy:      createdBy,
		UpdatedAt:      now,
	}, nil
}

// WithUpdate builds a validated replacement for an existing event,
// preserving identity and creation audit fields.
func (e *CalendarEvent) WithUpdate(in CalendarEventInput, status EventStatus, updatedBy string) (*CalendarEvent, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be one of SCHEDULED, CONFIRMED, CANCELLED, COMPLETED")
	}
	if err := validateCalendarEventInput(in); err != nil {
		return nil, err
	}

	updated := *e
	updated.Title = strings.TrimSpace(in.Title)
	updated.Description = strings.TrimSpace(in.Description)
	updated.EventType = in.EventType
	updated.StartDate = dayOf(in.StartDate)
	updated.EndDate = dayOf(in.EndDate)
	updated.IsAllDay = in.IsAllDay
	updated.StartTime = in.StartTime
	updated.EndTime = in.EndTime
	updated.Location = strings.TrimSpace(in.Location)
	updated.CourseID = in.CourseID
	updated.Status = status
	updated.OrganizerEmail = strings.TrimSpace(in.OrganizerEmail)
	updated.Attendees = in.Attendees
	updated.UpdatedBy = updatedBy
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// IsPast reports whether the event ended before today.
func (e *CalendarEvent) IsPast() bool {
	return e.EndDate.Before(dayOf(time.Now()))
}

// IsFuture reports whether the event starts after today.
func (e *CalendarEvent) IsFuture() bool {
	return e.StartDate.After(dayOf(time.Now()))
}

// IsOngoing reports whether today falls inside the event's date range.
func (e *CalendarEvent) IsOngoing() bool {
	today := dayOf(time.Now())
	return !e.StartDate.After(today) && !e.EndDate.Before(today)
}

// DurationInDays returns the inclusive number of days the event spans.
func (e *CalendarEvent) DurationInDays() int {
	return int(e.EndDate.Sub(e.StartDate).Hours()/24) + 1
}

// IsActive reports whether the event still counts (not cancelled).
func (e *CalendarEvent) IsActive() bool {
	return e.Status != EventStatusCancelled
}

// IsCompleted reports whether the event reached its terminal state.
func (e *CalendarEvent) IsCompleted() bool {
	return e.Status == EventStatusCompleted
}

func validateCalendarEventInput(in CalendarEventInput) error {
	title := strings.TrimSpace(in.Title)
	if len(title) < EventTitleMinLength || len(title) > EventTitleMaxLength {
		return apperrors.NewValidationError("title", "must be between 3 and 200 characters")
	}
	if !in.EventType.Valid() {
		return apperrors.NewValidationError("eventType", "is not a supported event type")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return apperrors.NewValidationError("startDate", "start and end dates are required")
	}
	start := dayOf(in.StartDate)
	end := dayOf(in.EndDate)
	if end.Before(start) {
		return apperrors.NewValidationError("endDate", "cannot be before startDate")
	}
	if end.After(start.AddDate(EventMaxSpanYears, 0, 0)) {
		return apperrors.NewValidationError("endDate", "event cannot span more than one year")
	}
	if start.Before(dayOf(time.Now()).AddDate(-EventMaxPastYears, 0, 0)) {
		return apperrors.NewValidationError("startDate", "cannot be more than five years in the past")
	}
	if err := validateEventTimes(in.IsAllDay, in.StartTime, in.EndTime); err != nil {
		return err
	}
	if !validation.IsEmail(strings.TrimSpace(in.OrganizerEmail)) {
		return apperrors.NewValidationError("organizerEmail", "must be a valid email address")
	}
	if len(in.Attendees) > EventMaxAttendees {
		return apperrors.NewValidationError("attendees", "cannot exceed 500 entries")
	}
	seen := make(map[string]struct{}, len(in.Attendees))
	for _, attendee := range in.Attendees {
		if !validation.IsEmail(attendee) {
			return apperrors.NewValidationError("attendees", "every attendee must be a valid email address")
		}
		key := strings.ToLower(attendee)
		if _, dup := seen[key]; dup {
			return apperrors.NewValidationError("attendees", "must not contain duplicates")
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateEventTimes(isAllDay bool, startTime, endTime string) error {
	if isAllDay {
		if startTime != "" || endTime != "" {
			return apperrors.NewValidationError("startTime", "all-day events cannot carry start or end times")
		}
		return nil
	}
	startMinutes, err := validation.MinutesOfDay(startTime)
	if err != nil {
		return apperrors.NewValidationError("startTime", "must be a 24-hour HH:mm time")
	}
	endMinutes, err := validation.MinutesOfDay(endTime)
	if err != nil {
		return apperrors.NewValidationError("endTime", "must be a 24-hour HH:mm time")
	}
	if endMinutes <= startMinutes {
		return apperrors.NewValidationError("endTime", "must be after startTime")
	}
	return nil
}

// EventFilter scopes calendar event listing queries.
type EventFilter struct {
	EventType EventType
	Status    EventStatus
	CourseID  string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/emre/scholaris/internal/pkg/apperrors"
)

func validCalendarEventInput() CalendarEventInput {
	today := time.Now().UTC()
	return CalendarEventInput{
		Title:          "Parent-teacher meeting",
		Description:    "Quarterly progress review",
		EventType:      EventTypeMeeting,
		StartDate:      today.AddDate(0, 0, 7),
		EndDate:        today.AddDate(0, 0, 7),
		IsAllDay:       false,
		StartTime:      "18:00",
		EndTime:        "19:30",
		Location:       "Main hall",
		OrganizerEmail: "inspector@school.cl",
		Attendees:      []string{"ana.soto@school.cl", "pedro.rojas@school.cl"},
	}
}

func TestNewCalendarEvent(t *testing.T) {
	event, err := NewCalendarEvent(validCalendarEventInput(), "inspector@school.cl")
	if err != nil {
		t.Fatalf("NewCalendarEvent: %v", err)
	}
	if event.Status != EventStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", event.Status)
	}
	if !event.IsFuture() || event.IsPast() || event.IsOngoing() {
		t.Error("next-week event misclassified temporally")
	}
	if event.DurationInDays() != 1 {
		t.Errorf("DurationInDays = %d, want 1", event.DurationInDays())
	}
}

func TestNewCalendarEventDateRules(t *testing.T) {
	in := validCalendarEventInput()
	in.EndDate = in.StartDate.AddDate(0, 0, -1)
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("end before start accepted: %v", err)
	}

	in = validCalendarEventInput()
	in.EndDate = in.StartDate.AddDate(1, 0, 1)
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("multi-year span accepted: %v", err)
	}

	in = validCalendarEventInput()
	in.StartDate = time.Now().UTC().AddDate(-5, 0, -1)
	in.EndDate = in.StartDate
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("ancient start date accepted: %v", err)
	}
}

func TestNewCalendarEventTimeRules(t *testing.T) {
	in := validCalendarEventInput()
	in.IsAllDay = true
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("all-day event with times accepted: %v", err)
	}

	in.StartTime, in.EndTime = "", ""
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); err != nil {
		t.Errorf("valid all-day event rejected: %v", err)
	}

	in = validCalendarEventInput()
	in.EndTime = "17:00"
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("end time before start time accepted: %v", err)
	}
}

func TestNewCalendarEventAttendeeRules(t *testing.T) {
	in := validCalendarEventInput()
	in.Attendees = []string{"ana.soto@school.cl", "Ana.Soto@school.cl"}
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("case-insensitive duplicate accepted: %v", err)
	}

	in = validCalendarEventInput()
	in.Attendees = []string{"not-an-email"}
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("malformed attendee accepted: %v", err)
	}

	in = validCalendarEventInput()
	in.Attendees = make([]string, EventMaxAttendees+1)
	for i := range in.Attendees {
		in.Attendees[i] = fmt.Sprintf("guest%d@school.cl", i)
	}
	if _, err := NewCalendarEvent(in, "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("oversized attendee list accepted: %v", err)
	}
}

func TestCalendarEventWithUpdate(t *testing.T) {
	event, err := NewCalendarEvent(validCalendarEventInput(), "inspector@school.cl")
	if err != nil {
		t.Fatalf("NewCalendarEvent: %v", err)
	}

	in := validCalendarEventInput()
	in.Title = "Rescheduled parent-teacher meeting"
	updated, err := event.WithUpdate(in, EventStatusConfirmed, "secretary@school.cl")
	if err != nil {
		t.Fatalf("WithUpdate: %v", err)
	}
	if updated.Title != "Rescheduled parent-teacher meeting" || updated.Status != EventStatusConfirmed {
		t.Error("update not applied")
	}
	if updated.ID != event.ID || updated.CreatedBy != event.CreatedBy {
		t.Error("identity or creation audit changed on update")
	}

	if _, err := event.WithUpdate(in, "POSTPONED", "secretary@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("invalid status accepted: %v", err)
	}
}

func TestCalendarEventTemporalHelpers(t *testing.T) {
	today := time.Now().UTC()

	in := validCalendarEventInput()
	in.StartDate = today.AddDate(0, 0, -10)
	in.EndDate = today.AddDate(0, 0, -8)
	past, err := NewCalendarEvent(in, "inspector@school.cl")
	if err != nil {
		t.Fatalf("NewCalendarEvent: %v", err)
	}
	if !past.IsPast() || past.IsOngoing() || past.IsFuture() {
		t.Error("past event misclassified")
	}
	if past.DurationInDays() != 3 {
		t.Errorf("DurationInDays = %d, want 3", past.DurationInDays())
	}

	in = validCalendarEventInput()
	in.StartDate = today.AddDate(0, 0, -1)
	in.EndDate = today.AddDate(0, 0, 1)
	ongoing, err := NewCalendarEvent(in, "inspector@school.cl")
	if err != nil {
		t.Fatalf("NewCalendarEvent: %v", err)
	}
	if !ongoing.IsOngoing() || ongoing.IsPast() || ongoing.IsFuture() {
		t.Error("ongoing event misclassified")
	}

	ongoing.Status = EventStatusCancelled
	if ongoing.IsActive() {
		t.Error("cancelled event reports active")
	}
}

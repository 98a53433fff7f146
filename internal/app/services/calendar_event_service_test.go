package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

func TestCreateEvent(t *testing.T) {
	course := mustCourse(t, "MAT-8-2025")
	repo := newFakeEventRepo()
	svc := NewCalendarEventService(repo, newFakeCourseRepo(course))

	today := time.Now().UTC()
	in := models.CalendarEventInput{
		Title:          "Algebra exam",
		EventType:      models.EventTypeExam,
		StartDate:      today.AddDate(0, 0, 14),
		EndDate:        today.AddDate(0, 0, 14),
		StartTime:      "09:00",
		EndTime:        "10:30",
		CourseID:       course.ID,
		OrganizerEmail: "pedro.rojas@school.cl",
	}

	event, err := svc.CreateEvent(context.Background(), in, "pedro.rojas@school.cl")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Status != models.EventStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", event.Status)
	}

	in.CourseID = "missing"
	if _, err := svc.CreateEvent(context.Background(), in, "pedro.rojas@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("unknown linked course err = %v, want business rule error", err)
	}
}

func TestListUpcomingEvents(t *testing.T) {
	past := mustEvent(t, -30)
	soon := mustEvent(t, 2)
	later := mustEvent(t, 9)
	cancelled := mustEvent(t, 5)
	cancelled.Status = models.EventStatusCancelled

	svc := NewCalendarEventService(newFakeEventRepo(past, soon, later, cancelled), newFakeCourseRepo())

	events, err := svc.ListUpcomingEvents(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListUpcomingEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("upcoming = %d events, want 2", len(events))
	}
	if events[0].ID != soon.ID || events[1].ID != later.ID {
		t.Error("upcoming events not ordered by start date")
	}

	events, err = svc.ListUpcomingEvents(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListUpcomingEvents limit 1: %v", err)
	}
	if len(events) != 1 || events[0].ID != soon.ID {
		t.Error("limit not applied to upcoming events")
	}
}

func TestUpdateEvent(t *testing.T) {
	event := mustEvent(t, 7)
	svc := NewCalendarEventService(newFakeEventRepo(event), newFakeCourseRepo())

	title := "Rescheduled parent-teacher meeting"
	status := string(models.EventStatusConfirmed)
	updated, err := svc.UpdateEvent(context.Background(), event.ID,
		dto.UpdateCalendarEventRequest{Title: &title, Status: &status}, "inspector@school.cl")
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != title || updated.Status != models.EventStatusConfirmed {
		t.Error("update not applied")
	}
}

func TestUpdateEventCompletedIsImmutable(t *testing.T) {
	event := mustEvent(t, 7)
	event.Status = models.EventStatusCompleted
	svc := NewCalendarEventService(newFakeEventRepo(event), newFakeCourseRepo())

	title := "New title"
	_, err := svc.UpdateEvent(context.Background(), event.ID,
		dto.UpdateCalendarEventRequest{Title: &title}, "inspector@school.cl")
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Fatalf("err = %v, want business rule error", err)
	}
}

func TestUpdateEventChecksNewLinkedCourse(t *testing.T) {
	event := mustEvent(t, 7)
	svc := NewCalendarEventService(newFakeEventRepo(event), newFakeCourseRepo())

	courseID := "missing"
	_, err := svc.UpdateEvent(context.Background(), event.ID,
		dto.UpdateCalendarEventRequest{CourseID: &courseID}, "inspector@school.cl")
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Fatalf("err = %v, want business rule error", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	event := mustEvent(t, 7)
	repo := newFakeEventRepo(event)
	svc := NewCalendarEventService(repo, newFakeCourseRepo())

	if err := svc.DeleteEvent(context.Background(), event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if len(repo.events) != 0 {
		t.Error("event still persisted after delete")
	}
	if err := svc.DeleteEvent(context.Background(), event.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

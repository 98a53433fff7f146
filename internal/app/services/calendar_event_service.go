package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/apperrors"
)

// CalendarEventRepository is the persistence port the calendar use cases need.
type CalendarEventRepository interface {
	Save(ctx context.Context, event *models.CalendarEvent) error
	FindByID(ctx context.Context, id string) (*models.CalendarEvent, error)
	FindAll(ctx context.Context, filter models.EventFilter) ([]*models.CalendarEvent, int64, error)
	FindUpcoming(ctx context.Context, limit int) ([]*models.CalendarEvent, error)
	Update(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

// DefaultUpcomingLimit bounds the upcoming-events listing when the caller
// gives no limit.
const DefaultUpcomingLimit = 10

// CalendarEventService defines the interface for calendar-related operations
type CalendarEventService interface {
	CreateEvent(ctx context.Context, in models.CalendarEventInput, actingUser string) (*models.CalendarEvent, error)
	GetEventByID(ctx context.Context, id string) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.CalendarEvent, int64, error)
	ListUpcomingEvents(ctx context.Context, limit int) ([]*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, patch dto.UpdateCalendarEventRequest, actingUser string) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// calendarEventServiceImpl implements the CalendarEventService interface
type calendarEventServiceImpl struct {
	eventRepo  CalendarEventRepository
	courseRepo CourseRepository
}

// NewCalendarEventService creates a new calendar event service instance
func NewCalendarEventService(eventRepo CalendarEventRepository, courseRepo CourseRepository) CalendarEventService {
	return &calendarEventServiceImpl{eventRepo: eventRepo, courseRepo: courseRepo}
}

// CreateEvent validates and persists a new SCHEDULED event. A linked
// course, when given, must exist.
func (s *calendarEventServiceImpl) CreateEvent(ctx context.Context, in models.CalendarEventInput, actingUser string) (*models.CalendarEvent, error) {
	event, err := models.NewCalendarEvent(in, actingUser)
	if err != nil {
		return nil, err
	}

	if event.CourseID != "" {
		if err := s.checkLinkedCourse(ctx, event.CourseID); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating calendar event: %w", err)
	}
	return event, nil
}

// GetEventByID retrieves a calendar event by ID
func (s *calendarEventServiceImpl) GetEventByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents retrieves calendar events matching the filter.
func (s *calendarEventServiceImpl) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.CalendarEvent, int64, error) {
	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing calendar events: %w", err)
	}
	return events, total, nil
}

// ListUpcomingEvents retrieves the next non-cancelled events starting today
// or later, ordered by start date.
func (s *calendarEventServiceImpl) ListUpcomingEvents(ctx context.Context, limit int) ([]*models.CalendarEvent, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	events, err := s.eventRepo.FindUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming events: %w", err)
	}
	return events, nil
}

// UpdateEvent merges the patch onto the stored event, re-validates the
// merged result and persists it. COMPLETED events are immutable.
func (s *calendarEventServiceImpl) UpdateEvent(ctx context.Context, id string, patch dto.UpdateCalendarEventRequest, actingUser string) (*models.CalendarEvent, error) {
	existing, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsCompleted() {
		return nil, apperrors.NewBusinessRuleError("event.completed-immutable",
			fmt.Sprintf("event %s is completed and cannot be updated", id))
	}

	in, status, err := patch.MergeInto(existing)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate", err.Error())
	}

	updated, err := existing.WithUpdate(in, status, actingUser)
	if err != nil {
		return nil, err
	}

	if updated.CourseID != "" && updated.CourseID != existing.CourseID {
		if err := s.checkLinkedCourse(ctx, updated.CourseID); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("error updating calendar event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes a calendar event entirely.
func (s *calendarEventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting calendar event: %w", err)
	}
	return nil
}

func (s *calendarEventServiceImpl) checkLinkedCourse(ctx context.Context, courseID string) error {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewBusinessRuleError("event.course-not-found",
				fmt.Sprintf("course %s does not exist", courseID))
		}
		return fmt.Errorf("error checking course %s: %w", courseID, err)
	}
	return nil
}

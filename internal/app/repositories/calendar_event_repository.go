package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/helpers"
)

var calendarEventColumns = []string{
	"id", "title", "description", "event_type", "start_date", "end_date",
	"is_all_day", "start_time", "end_time", "location", "course_id",
	"status", "organizer_email", "attendees", "created_by", "created_at",
	"updated_by", "updated_at",
}

// CalendarEventRepository handles database operations for calendar events
type CalendarEventRepository struct {
	db *pgxpool.Pool
}

// NewCalendarEventRepository creates a new calendar event repository
func NewCalendarEventRepository(db *pgxpool.Pool) *CalendarEventRepository {
	return &CalendarEventRepository{db: db}
}

// Save inserts a new calendar event
func (r *CalendarEventRepository) Save(ctx context.Context, event *models.CalendarEvent) error {
	attendees, err := json.Marshal(event.Attendees)
	if err != nil {
		return apperrors.NewPersistenceError("encoding event attendees", err)
	}

	query := squirrel.Insert("calendar_events").
		Columns(calendarEventColumns...).
		Values(
			event.ID, event.Title, event.Description, event.EventType,
			event.StartDate, event.EndDate, event.IsAllDay, event.StartTime,
			event.EndTime, event.Location, nullable(event.CourseID),
			event.Status, event.OrganizerEmail, attendees,
			event.CreatedBy, event.CreatedAt, event.UpdatedBy, event.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building insert event SQL", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewPersistenceError("inserting calendar event", err)
	}
	return nil
}

// FindByID retrieves a calendar event by ID
func (r *CalendarEventRepository) FindByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	query := squirrel.Select(calendarEventColumns...).
		From("calendar_events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select event SQL", err)
	}

	event, err := scanCalendarEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("calendar event", id)
		}
		return nil, apperrors.NewPersistenceError("querying calendar event", err)
	}
	return event, nil
}

// FindAll retrieves calendar events matching the filter with pagination
func (r *CalendarEventRepository) FindAll(ctx context.Context, filter models.EventFilter) ([]*models.CalendarEvent, int64, error) {
	query := squirrel.Select(calendarEventColumns...).
		From("calendar_events").
		PlaceholderFormat(squirrel.Dollar)

	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.DateFrom != nil {
		query = query.Where("end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("start_date <= ?", *filter.DateTo)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query = query.OrderBy("start_date").
		Limit(uint64(limit)).
		Offset(offset)

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("building list events SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("querying calendar events", err)
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	var total int64
	for rows.Next() {
		event, err := scanCalendarEventWithTotal(rows, &total)
		if err != nil {
			return nil, 0, apperrors.NewPersistenceError("scanning event row", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewPersistenceError("reading event rows", err)
	}

	return events, total, nil
}

// FindUpcoming retrieves the next non-cancelled events starting today or
// later, soonest first.
func (r *CalendarEventRepository) FindUpcoming(ctx context.Context, limit int) ([]*models.CalendarEvent, error) {
	query := squirrel.Select(calendarEventColumns...).
		From("calendar_events").
		Where("start_date >= CURRENT_DATE").
		Where("status <> ?", models.EventStatusCancelled).
		OrderBy("start_date", "title").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building upcoming events SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying upcoming events", err)
	}
	defer rows.Close()

	var events []*models.CalendarEvent
	for rows.Next() {
		event, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scanning event row", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("reading event rows", err)
	}

	return events, nil
}

// Update replaces the mutable columns of an existing event
func (r *CalendarEventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	attendees, err := json.Marshal(event.Attendees)
	if err != nil {
		return apperrors.NewPersistenceError("encoding event attendees", err)
	}

	query := squirrel.Update("calendar_events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("event_type", event.EventType).
		Set("start_date", event.StartDate).
		Set("end_date", event.EndDate).
		Set("is_all_day", event.IsAllDay).
		Set("start_time", event.StartTime).
		Set("end_time", event.EndTime).
		Set("location", event.Location).
		Set("course_id", nullable(event.CourseID)).
		Set("status", event.Status).
		Set("organizer_email", event.OrganizerEmail).
		Set("attendees", attendees).
		Set("updated_by", event.UpdatedBy).
		Set("updated_at", event.UpdatedAt).
		Where("id = ?", event.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building update event SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("updating calendar event", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("calendar event", event.ID)
	}
	return nil
}

// Delete removes a calendar event
func (r *CalendarEventRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("calendar_events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building delete event SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("deleting calendar event", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("calendar event", id)
	}
	return nil
}

// nullable maps an empty string onto SQL NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanCalendarEvent(row pgx.Row) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	var courseID *string
	var attendees []byte
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.EventType,
		&event.StartDate, &event.EndDate, &event.IsAllDay, &event.StartTime,
		&event.EndTime, &event.Location, &courseID, &event.Status,
		&event.OrganizerEmail, &attendees, &event.CreatedBy, &event.CreatedAt,
		&event.UpdatedBy, &event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if courseID != nil {
		event.CourseID = *courseID
	}
	if err := json.Unmarshal(attendees, &event.Attendees); err != nil {
		return nil, fmt.Errorf("decoding event attendees: %w", err)
	}
	return &event, nil
}

func scanCalendarEventWithTotal(row pgx.Row, total *int64) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	var courseID *string
	var attendees []byte
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.EventType,
		&event.StartDate, &event.EndDate, &event.IsAllDay, &event.StartTime,
		&event.EndTime, &event.Location, &courseID, &event.Status,
		&event.OrganizerEmail, &attendees, &event.CreatedBy, &event.CreatedAt,
		&event.UpdatedBy, &event.UpdatedAt,
		total,
	)
	if err != nil {
		return nil, err
	}
	if courseID != nil {
		event.CourseID = *courseID
	}
	if err := json.Unmarshal(attendees, &event.Attendees); err != nil {
		return nil, fmt.Errorf("decoding event attendees: %w", err)
	}
	return &event, nil
}

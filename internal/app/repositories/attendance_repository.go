package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/scholaris/internal/app/models"
	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/helpers"
)

var attendanceColumns = []string{
	"id", "student_id", "course_id", "date", "status", "arrival_time",
	"notes", "justification_document", "recorded_by", "created_at",
	"updated_by", "updated_at",
}

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Save inserts a new attendance record. The UNIQUE(student_id, course_id,
// date) constraint surfaces as a DuplicateError.
func (r *AttendanceRepository) Save(ctx context.Context, attendance *models.Attendance) error {
	query := squirrel.Insert("attendance_records").
		Columns(attendanceColumns...).
		Values(
			attendance.ID, attendance.StudentID, attendance.CourseID,
			attendance.Date, attendance.Status, attendance.ArrivalTime,
			attendance.Notes, attendance.JustificationDocument,
			attendance.RecordedBy, attendance.CreatedAt,
			attendance.UpdatedBy, attendance.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building insert attendance SQL", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("attendance",
				fmt.Sprintf("student %s, course %s, date %s",
					attendance.StudentID, attendance.CourseID, attendance.Date.Format("2006-01-02")))
		}
		return apperrors.NewPersistenceError("inserting attendance", err)
	}
	return nil
}

// FindByID retrieves an attendance record by ID
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	query := squirrel.Select(attendanceColumns...).
		From("attendance_records").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select attendance SQL", err)
	}

	attendance, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("attendance", id)
		}
		return nil, apperrors.NewPersistenceError("querying attendance", err)
	}
	return attendance, nil
}

// FindByStudentCourseDate retrieves the record covering the identity triple
func (r *AttendanceRepository) FindByStudentCourseDate(ctx context.Context, studentID, courseID string, date time.Time) (*models.Attendance, error) {
	query := squirrel.Select(attendanceColumns...).
		From("attendance_records").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID, "date": date}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select attendance SQL", err)
	}

	attendance, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("attendance",
				fmt.Sprintf("student %s, course %s, date %s", studentID, courseID, date.Format("2006-01-02")))
		}
		return nil, apperrors.NewPersistenceError("querying attendance", err)
	}
	return attendance, nil
}

// FindAll retrieves attendance records matching the filter with pagination
func (r *AttendanceRepository) FindAll(ctx context.Context, filter models.AttendanceFilter) ([]*models.Attendance, int64, error) {
	query := squirrel.Select(attendanceColumns...).
		From("attendance_records").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query = query.OrderBy("date DESC").
		Limit(uint64(limit)).
		Offset(offset)

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("building list attendance SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("querying attendance", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	var total int64
	for rows.Next() {
		var attendance models.Attendance
		if err := rows.Scan(
			&attendance.ID, &attendance.StudentID, &attendance.CourseID,
			&attendance.Date, &attendance.Status, &attendance.ArrivalTime,
			&attendance.Notes, &attendance.JustificationDocument,
			&attendance.RecordedBy, &attendance.CreatedAt,
			&attendance.UpdatedBy, &attendance.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, apperrors.NewPersistenceError("scanning attendance row", err)
		}
		records = append(records, &attendance)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewPersistenceError("reading attendance rows", err)
	}

	return records, total, nil
}

// Update replaces the correctable columns of an existing record
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	query := squirrel.Update("attendance_records").
		Set("status", attendance.Status).
		Set("arrival_time", attendance.ArrivalTime).
		Set("notes", attendance.Notes).
		Set("updated_by", attendance.UpdatedBy).
		Set("updated_at", attendance.UpdatedAt).
		Where("id = ?", attendance.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building update attendance SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("updating attendance", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("attendance", attendance.ID)
	}
	return nil
}

// Delete removes an attendance record
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("attendance_records").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building delete attendance SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("deleting attendance", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("attendance", id)
	}
	return nil
}

// SummarizeByStudent aggregates one student's records in the optional
// date range. No rows yields an all-zero summary.
func (r *AttendanceRepository) SummarizeByStudent(ctx context.Context, studentID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	return r.summarize(ctx, squirrel.Eq{"student_id": studentID}, from, to)
}

// SummarizeByCourse aggregates one course's records in the optional
// date range. No rows yields an all-zero summary.
func (r *AttendanceRepository) SummarizeByCourse(ctx context.Context, courseID string, from, to *time.Time) (*models.AttendanceSummary, error) {
	return r.summarize(ctx, squirrel.Eq{"course_id": courseID}, from, to)
}

func (r *AttendanceRepository) summarize(ctx context.Context, where squirrel.Eq, from, to *time.Time) (*models.AttendanceSummary, error) {
	query := squirrel.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'PRESENT')",
		"COUNT(*) FILTER (WHERE status = 'ABSENT')",
		"COUNT(*) FILTER (WHERE status = 'LATE')",
		"COUNT(*) FILTER (WHERE status = 'JUSTIFIED')",
	).
		From("attendance_records").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building attendance summary SQL", err)
	}

	var summary models.AttendanceSummary
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&summary.Total, &summary.Present, &summary.Absent,
		&summary.Late, &summary.Justified,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying attendance summary", err)
	}
	return &summary, nil
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var attendance models.Attendance
	err := row.Scan(
		&attendance.ID, &attendance.StudentID, &attendance.CourseID,
		&attendance.Date, &attendance.Status, &attendance.ArrivalTime,
		&attendance.Notes, &attendance.JustificationDocument,
		&attendance.RecordedBy, &attendance.CreatedAt,
		&attendance.UpdatedBy, &attendance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

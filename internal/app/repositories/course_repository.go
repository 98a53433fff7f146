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

var courseColumns = []string{
	"id", "code", "name", "grade", "section", "subject", "teacher_name",
	"teacher_email", "schedule", "capacity", "enrolled_count",
	"academic_year", "semester", "status", "created_by", "created_at",
	"updated_by", "updated_at",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Save inserts a new course record
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	schedule, err := json.Marshal(course.Schedule)
	if err != nil {
		return apperrors.NewPersistenceError("encoding course schedule", err)
	}

	query := squirrel.Insert("courses").
		Columns(courseColumns...).
		Values(
			course.ID, course.Code, course.Name, course.Grade, course.Section,
			course.Subject, course.TeacherName, course.TeacherEmail, schedule,
			course.Capacity, course.EnrolledCount, course.AcademicYear,
			course.Semester, course.Status, course.CreatedBy, course.CreatedAt,
			course.UpdatedBy, course.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building insert course SQL", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("course", course.Code)
		}
		return apperrors.NewPersistenceError("inserting course", err)
	}
	return nil
}

// FindByID retrieves a course by ID
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, id)
}

// FindByCode retrieves a course by its unique code
func (r *CourseRepository) FindByCode(ctx context.Context, code string) (*models.Course, error) {
	return r.findOne(ctx, squirrel.Eq{"code": code}, code)
}

func (r *CourseRepository) findOne(ctx context.Context, where squirrel.Eq, key string) (*models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select course SQL", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("course", key)
		}
		return nil, apperrors.NewPersistenceError("querying course", err)
	}
	return course, nil
}

// FindAll retrieves courses matching the filter with pagination
func (r *CourseRepository) FindAll(ctx context.Context, filter models.CourseFilter) ([]*models.Course, int64, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Grade != 0 {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.AcademicYear != 0 {
		query = query.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Semester != 0 {
		query = query.Where("semester = ?", filter.Semester)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query = query.OrderBy("code").
		Limit(uint64(limit)).
		Offset(offset)

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("building list courses SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("querying courses", err)
	}
	defer rows.Close()

	var courses []*models.Course
	var total int64
	for rows.Next() {
		course, err := scanCourseWithTotal(rows, &total)
		if err != nil {
			return nil, 0, apperrors.NewPersistenceError("scanning course row", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewPersistenceError("reading course rows", err)
	}

	return courses, total, nil
}

// Update replaces the mutable columns of an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	schedule, err := json.Marshal(course.Schedule)
	if err != nil {
		return apperrors.NewPersistenceError("encoding course schedule", err)
	}

	query := squirrel.Update("courses").
		Set("code", course.Code).
		Set("name", course.Name).
		Set("grade", course.Grade).
		Set("section", course.Section).
		Set("subject", course.Subject).
		Set("teacher_name", course.TeacherName).
		Set("teacher_email", course.TeacherEmail).
		Set("schedule", schedule).
		Set("capacity", course.Capacity).
		Set("enrolled_count", course.EnrolledCount).
		Set("academic_year", course.AcademicYear).
		Set("semester", course.Semester).
		Set("status", course.Status).
		Set("updated_by", course.UpdatedBy).
		Set("updated_at", course.UpdatedAt).
		Where("id = ?", course.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building update course SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("course", course.Code)
		}
		return apperrors.NewPersistenceError("updating course", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("course", course.ID)
	}
	return nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var schedule []byte
	err := row.Scan(
		&course.ID, &course.Code, &course.Name, &course.Grade, &course.Section,
		&course.Subject, &course.TeacherName, &course.TeacherEmail, &schedule,
		&course.Capacity, &course.EnrolledCount, &course.AcademicYear,
		&course.Semester, &course.Status, &course.CreatedBy, &course.CreatedAt,
		&course.UpdatedBy, &course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(schedule, &course.Schedule); err != nil {
		return nil, fmt.Errorf("decoding course schedule: %w", err)
	}
	return &course, nil
}

func scanCourseWithTotal(row pgx.Row, total *int64) (*models.Course, error) {
	var course models.Course
	var schedule []byte
	err := row.Scan(
		&course.ID, &course.Code, &course.Name, &course.Grade, &course.Section,
		&course.Subject, &course.TeacherName, &course.TeacherEmail, &schedule,
		&course.Capacity, &course.EnrolledCount, &course.AcademicYear,
		&course.Semester, &course.Status, &course.CreatedBy, &course.CreatedAt,
		&course.UpdatedBy, &course.UpdatedAt,
		total,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(schedule, &course.Schedule); err != nil {
		return nil, fmt.Errorf("decoding course schedule: %w", err)
	}
	return &course, nil
}

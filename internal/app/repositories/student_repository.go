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

var studentColumns = []string{
	"id", "national_id", "first_name", "last_name", "email", "phone",
	"birth_date", "grade", "section", "address", "emergency_contact",
	"enrollment_date", "status", "created_by", "created_at", "updated_by", "updated_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Save inserts a new student record
func (r *StudentRepository) Save(ctx context.Context, student *models.Student) error {
	contact, err := json.Marshal(student.EmergencyContact)
	if err != nil {
		return apperrors.NewPersistenceError("encoding emergency contact", err)
	}

	query := squirrel.Insert("students").
		Columns(studentColumns...).
		Values(
			student.ID, student.NationalID, student.FirstName, student.LastName,
			student.Email, student.Phone, student.BirthDate, student.Grade,
			student.Section, student.Address, contact, student.EnrollmentDate,
			student.Status, student.CreatedBy, student.CreatedAt,
			student.UpdatedBy, student.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building insert student SQL", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("student", student.NationalID)
		}
		return apperrors.NewPersistenceError("inserting student", err)
	}
	return nil
}

// FindByID retrieves a student by ID
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select student SQL", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student", id)
		}
		return nil, apperrors.NewPersistenceError("querying student", err)
	}
	return student, nil
}

// FindByNationalID retrieves a student by national ID
func (r *StudentRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("national_id = ?", nationalID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select student SQL", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("student", nationalID)
		}
		return nil, apperrors.NewPersistenceError("querying student", err)
	}
	return student, nil
}

// FindAll retrieves students matching the filter with pagination
func (r *StudentRepository) FindAll(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Grade != 0 {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query = query.OrderBy("last_name", "first_name").
		Limit(uint64(limit)).
		Offset(offset)

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("building list students SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("querying students", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64
	for rows.Next() {
		student, err := scanStudentWithTotal(rows, &total)
		if err != nil {
			return nil, 0, apperrors.NewPersistenceError("scanning student row", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewPersistenceError("reading student rows", err)
	}

	return students, total, nil
}

// Update replaces the mutable columns of an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	contact, err := json.Marshal(student.EmergencyContact)
	if err != nil {
		return apperrors.NewPersistenceError("encoding emergency contact", err)
	}

	query := squirrel.Update("students").
		Set("national_id", student.NationalID).
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("email", student.Email).
		Set("phone", student.Phone).
		Set("birth_date", student.BirthDate).
		Set("grade", student.Grade).
		Set("section", student.Section).
		Set("address", student.Address).
		Set("emergency_contact", contact).
		Set("enrollment_date", student.EnrollmentDate).
		Set("status", student.Status).
		Set("updated_by", student.UpdatedBy).
		Set("updated_at", student.UpdatedAt).
		Where("id = ?", student.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building update student SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("student", student.NationalID)
		}
		return apperrors.NewPersistenceError("updating student", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("student", student.ID)
	}
	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var contact []byte
	err := row.Scan(
		&student.ID, &student.NationalID, &student.FirstName, &student.LastName,
		&student.Email, &student.Phone, &student.BirthDate, &student.Grade,
		&student.Section, &student.Address, &contact, &student.EnrollmentDate,
		&student.Status, &student.CreatedBy, &student.CreatedAt,
		&student.UpdatedBy, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contact, &student.EmergencyContact); err != nil {
		return nil, fmt.Errorf("decoding emergency contact: %w", err)
	}
	return &student, nil
}

func scanStudentWithTotal(row pgx.Row, total *int64) (*models.Student, error) {
	var student models.Student
	var contact []byte
	err := row.Scan(
		&student.ID, &student.NationalID, &student.FirstName, &student.LastName,
		&student.Email, &student.Phone, &student.BirthDate, &student.Grade,
		&student.Section, &student.Address, &contact, &student.EnrollmentDate,
		&student.Status, &student.CreatedBy, &student.CreatedAt,
		&student.UpdatedBy, &student.UpdatedAt,
		total,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(contact, &student.EmergencyContact); err != nil {
		return nil, fmt.Errorf("decoding emergency contact: %w", err)
	}
	return &student, nil
}

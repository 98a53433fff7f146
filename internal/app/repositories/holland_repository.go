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

var hollandColumns = []string{
	"id", "student_id", "test_date",
	"realistic", "investigative", "artistic", "social", "enterprising", "conventional",
	"dominant_types", "interpretation", "recommendations", "status",
	"administered_by", "created_by", "created_at", "updated_by", "updated_at",
}

// HollandRepository handles database operations for Holland tests
type HollandRepository struct {
	db *pgxpool.Pool
}

// NewHollandRepository creates a new Holland test repository
func NewHollandRepository(db *pgxpool.Pool) *HollandRepository {
	return &HollandRepository{db: db}
}

// Save inserts a new Holland test record
func (r *HollandRepository) Save(ctx context.Context, test *models.HollandTest) error {
	dominant, err := json.Marshal(test.DominantTypes)
	if err != nil {
		return apperrors.NewPersistenceError("encoding dominant types", err)
	}
	recommendations, err := json.Marshal(test.Recommendations)
	if err != nil {
		return apperrors.NewPersistenceError("encoding recommendations", err)
	}

	query := squirrel.Insert("holland_tests").
		Columns(hollandColumns...).
		Values(
			test.ID, test.StudentID, test.TestDate,
			test.Scores.Realistic, test.Scores.Investigative, test.Scores.Artistic,
			test.Scores.Social, test.Scores.Enterprising, test.Scores.Conventional,
			dominant, test.Interpretation, recommendations, test.Status,
			test.AdministeredBy, test.CreatedBy, test.CreatedAt,
			test.UpdatedBy, test.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building insert Holland test SQL", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewPersistenceError("inserting Holland test", err)
	}
	return nil
}

// FindByID retrieves a Holland test by ID
func (r *HollandRepository) FindByID(ctx context.Context, id string) (*models.HollandTest, error) {
	query := squirrel.Select(hollandColumns...).
		From("holland_tests").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building select Holland test SQL", err)
	}

	test, err := scanHollandTest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Holland test", id)
		}
		return nil, apperrors.NewPersistenceError("querying Holland test", err)
	}
	return test, nil
}

// FindAll retrieves Holland tests matching the filter with pagination
func (r *HollandRepository) FindAll(ctx context.Context, filter models.HollandFilter) ([]*models.HollandTest, int64, error) {
	query := squirrel.Select(hollandColumns...).
		From("holland_tests").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query = query.OrderBy("test_date DESC").
		Limit(uint64(limit)).
		Offset(offset)

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("building list Holland tests SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("querying Holland tests", err)
	}
	defer rows.Close()

	var tests []*models.HollandTest
	var total int64
	for rows.Next() {
		test, err := scanHollandTestWithTotal(rows, &total)
		if err != nil {
			return nil, 0, apperrors.NewPersistenceError("scanning Holland test row", err)
		}
		tests = append(tests, test)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewPersistenceError("reading Holland test rows", err)
	}

	return tests, total, nil
}

// FindByStudent retrieves every test of one student, newest first
func (r *HollandRepository) FindByStudent(ctx context.Context, studentID string) ([]*models.HollandTest, error) {
	query := squirrel.Select(hollandColumns...).
		From("holland_tests").
		Where("student_id = ?", studentID).
		OrderBy("test_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, apperrors.NewPersistenceError("building student Holland tests SQL", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying student Holland tests", err)
	}
	defer rows.Close()

	var tests []*models.HollandTest
	for rows.Next() {
		test, err := scanHollandTest(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scanning Holland test row", err)
		}
		tests = append(tests, test)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("reading Holland test rows", err)
	}

	return tests, nil
}

// Update replaces every mutable column of an existing test. The student
// link and creation audit columns never change.
func (r *HollandRepository) Update(ctx context.Context, test *models.HollandTest) error {
	dominant, err := json.Marshal(test.DominantTypes)
	if err != nil {
		return apperrors.NewPersistenceError("encoding dominant types", err)
	}
	recommendations, err := json.Marshal(test.Recommendations)
	if err != nil {
		return apperrors.NewPersistenceError("encoding recommendations", err)
	}

	query := squirrel.Update("holland_tests").
		Set("test_date", test.TestDate).
		Set("realistic", test.Scores.Realistic).
		Set("investigative", test.Scores.Investigative).
		Set("artistic", test.Scores.Artistic).
		Set("social", test.Scores.Social).
		Set("enterprising", test.Scores.Enterprising).
		Set("conventional", test.Scores.Conventional).
		Set("dominant_types", dominant).
		Set("interpretation", test.Interpretation).
		Set("recommendations", recommendations).
		Set("status", test.Status).
		Set("administered_by", test.AdministeredBy).
		Set("updated_by", test.UpdatedBy).
		Set("updated_at", test.UpdatedAt).
		Where("id = ?", test.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building update Holland test SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("updating Holland test", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Holland test", test.ID)
	}
	return nil
}

// Delete permanently removes a Holland test record
func (r *HollandRepository) Delete(ctx context.Context, id string) error {
	query := squirrel.Delete("holland_tests").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return apperrors.NewPersistenceError("building delete Holland test SQL", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("deleting Holland test", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Holland test", id)
	}
	return nil
}

func scanHollandTest(row pgx.Row) (*models.HollandTest, error) {
	var test models.HollandTest
	var dominant, recommendations []byte
	err := row.Scan(
		&test.ID, &test.StudentID, &test.TestDate,
		&test.Scores.Realistic, &test.Scores.Investigative, &test.Scores.Artistic,
		&test.Scores.Social, &test.Scores.Enterprising, &test.Scores.Conventional,
		&dominant, &test.Interpretation, &recommendations, &test.Status,
		&test.AdministeredBy, &test.CreatedBy, &test.CreatedAt,
		&test.UpdatedBy, &test.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeHollandLists(&test, dominant, recommendations); err != nil {
		return nil, err
	}
	return &test, nil
}

func scanHollandTestWithTotal(row pgx.Row, total *int64) (*models.HollandTest, error) {
	var test models.HollandTest
	var dominant, recommendations []byte
	err := row.Scan(
		&test.ID, &test.StudentID, &test.TestDate,
		&test.Scores.Realistic, &test.Scores.Investigative, &test.Scores.Artistic,
		&test.Scores.Social, &test.Scores.Enterprising, &test.Scores.Conventional,
		&dominant, &test.Interpretation, &recommendations, &test.Status,
		&test.AdministeredBy, &test.CreatedBy, &test.CreatedAt,
		&test.UpdatedBy, &test.UpdatedAt,
		total,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeHollandLists(&test, dominant, recommendations); err != nil {
		return nil, err
	}
	return &test, nil
}

func decodeHollandLists(test *models.HollandTest, dominant, recommendations []byte) error {
	if err := json.Unmarshal(dominant, &test.DominantTypes); err != nil {
		return fmt.Errorf("decoding dominant types: %w", err)
	}
	if err := json.Unmarshal(recommendations, &test.Recommendations); err != nil {
		return fmt.Errorf("decoding recommendations: %w", err)
	}
	return nil
}

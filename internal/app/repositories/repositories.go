// Package repositories implements the persistence ports declared by the
// services package on top of PostgreSQL via pgx. Queries are built with
// squirrel using dollar placeholders; pgx errors are translated into the
// application error taxonomy at this boundary so nothing above it ever
// sees a driver error directly.
package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository       *StudentRepository
	CourseRepository        *CourseRepository
	AttendanceRepository    *AttendanceRepository
	CalendarEventRepository *CalendarEventRepository
	HollandRepository       *HollandRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:       NewStudentRepository(db),
		CourseRepository:        NewCourseRepository(db),
		AttendanceRepository:    NewAttendanceRepository(db),
		CalendarEventRepository: NewCalendarEventRepository(db),
		HollandRepository:       NewHollandRepository(db),
	}
}

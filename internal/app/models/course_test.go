package models

import (
	"errors"
	"testing"

	"github.com/emre/scholaris/internal/pkg/apperrors"
)

func validCourseInput() CourseInput {
	return CourseInput{
		Code:         "MAT-8-2025",
		Name:         "Matematicas 8A",
		Grade:        8,
		Section:      "A",
		Subject:      SubjectMathematics,
		TeacherName:  "Pedro Rojas",
		TeacherEmail: "pedro.rojas@school.cl",
		Schedule: []ScheduleSlot{
			{Day: WeekdayMonday, StartTime: "08:30", EndTime: "10:00"},
			{Day: WeekdayWednesday, StartTime: "10:15", EndTime: "11:45"},
		},
		Capacity:     35,
		AcademicYear: 2025,
		Semester:     1,
	}
}

func TestNewCourse(t *testing.T) {
	course, err := NewCourse(validCourseInput(), "admin@school.cl")
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}
	if course.ID == "" {
		t.Error("expected a generated ID")
	}
	if course.Status != CourseStatusActive {
		t.Errorf("status = %s, want ACTIVE", course.Status)
	}
	if !course.HasCapacity() {
		t.Error("empty course should have capacity")
	}
}

func TestNewCourseRejectsBadCode(t *testing.T) {
	for _, code := range []string{"MAT-13-2025", "mat-8-2025", "MAT-8-25", "MATHS-8-2025"} {
		in := validCourseInput()
		in.Code = code
		_, err := NewCourse(in, "admin@school.cl")
		var vErr *apperrors.ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "code" {
			t.Errorf("code %q: err = %v, want code validation error", code, err)
		}
	}
}

func TestNewCourseScheduleRules(t *testing.T) {
	in := validCourseInput()
	in.Schedule = nil
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("empty schedule accepted: %v", err)
	}

	in = validCourseInput()
	in.Schedule = []ScheduleSlot{{Day: WeekdayMonday, StartTime: "10:00", EndTime: "09:00"}}
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("inverted slot accepted: %v", err)
	}

	in = validCourseInput()
	in.Schedule = []ScheduleSlot{{Day: "SATURDAY", StartTime: "08:30", EndTime: "10:00"}}
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("weekend slot accepted: %v", err)
	}
}

func TestNewCourseCapacityRules(t *testing.T) {
	in := validCourseInput()
	in.Capacity = 0
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("zero capacity accepted: %v", err)
	}

	in = validCourseInput()
	in.EnrolledCount = in.Capacity + 1
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("enrolled beyond capacity accepted: %v", err)
	}
}

func TestCourseHasCapacity(t *testing.T) {
	in := validCourseInput()
	in.EnrolledCount = in.Capacity
	course, err := NewCourse(in, "admin@school.cl")
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}
	if course.HasCapacity() {
		t.Error("full course reports capacity")
	}
}

func TestCourseFinalized(t *testing.T) {
	course, err := NewCourse(validCourseInput(), "admin@school.cl")
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}

	finalized := course.Finalized("admin@school.cl")
	if !finalized.IsFinalized() {
		t.Error("Finalized copy is not FINALIZED")
	}
	if finalized.ID != course.ID {
		t.Error("identity changed on finalize")
	}
	if course.IsFinalized() {
		t.Error("original course mutated")
	}
}

func TestCourseWithUpdate(t *testing.T) {
	course, err := NewCourse(validCourseInput(), "admin@school.cl")
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}

	in := validCourseInput()
	in.TeacherName = "Carla Munoz"
	updated, err := course.WithUpdate(in, CourseStatusInactive, "secretary@school.cl")
	if err != nil {
		t.Fatalf("WithUpdate: %v", err)
	}
	if updated.TeacherName != "Carla Munoz" || updated.Status != CourseStatusInactive {
		t.Error("update not applied")
	}
	if updated.CreatedBy != course.CreatedBy || !updated.CreatedAt.Equal(course.CreatedAt) {
		t.Error("creation audit fields changed on update")
	}

	if _, err := course.WithUpdate(in, "ARCHIVED", "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("invalid status accepted: %v", err)
	}
}

func TestNewCourseSemesterAndYear(t *testing.T) {
	in := validCourseInput()
	in.Semester = 3
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("semester 3 accepted: %v", err)
	}

	in = validCourseInput()
	in.AcademicYear = 1999
	if _, err := NewCourse(in, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("year 1999 accepted: %v", err)
	}
}

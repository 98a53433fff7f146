package models

import (
	"errors"
	"testing"
	"time"

	"github.com/emre/scholaris/internal/pkg/apperrors"
)

func validAttendanceInput() AttendanceInput {
	return AttendanceInput{
		StudentID: "student-1",
		CourseID:  "course-1",
		Date:      time.Now().UTC().AddDate(0, 0, -1),
		Status:    AttendanceStatusPresent,
	}
}

func TestNewAttendance(t *testing.T) {
	record, err := NewAttendance(validAttendanceInput(), "teacher@school.cl")
	if err != nil {
		t.Fatalf("NewAttendance: %v", err)
	}
	if record.ID == "" {
		t.Error("expected a generated ID")
	}
	if record.RecordedBy != "teacher@school.cl" {
		t.Errorf("RecordedBy = %q", record.RecordedBy)
	}
	if h, m, s := record.Date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("date not truncated to midnight: %v", record.Date)
	}
}

func TestNewAttendanceDateRules(t *testing.T) {
	in := validAttendanceInput()
	in.Date = time.Now().UTC().AddDate(0, 0, 1)
	if _, err := NewAttendance(in, "teacher@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("future date accepted: %v", err)
	}

	in = validAttendanceInput()
	in.Date = time.Now().UTC().AddDate(-1, 0, -1)
	if _, err := NewAttendance(in, "teacher@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("date older than a year accepted: %v", err)
	}

	// Today is the inclusive upper bound.
	in = validAttendanceInput()
	in.Date = time.Now().UTC()
	if _, err := NewAttendance(in, "teacher@school.cl"); err != nil {
		t.Errorf("today rejected: %v", err)
	}
}

func TestNewAttendanceLateRules(t *testing.T) {
	in := validAttendanceInput()
	in.Status = AttendanceStatusLate
	_, err := NewAttendance(in, "teacher@school.cl")
	var vErr *apperrors.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "arrivalTime" {
		t.Errorf("LATE without arrivalTime: err = %v", err)
	}

	in.ArrivalTime = "8:30"
	if _, err := NewAttendance(in, "teacher@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("malformed arrivalTime accepted: %v", err)
	}

	in.ArrivalTime = "08:45"
	if _, err := NewAttendance(in, "teacher@school.cl"); err != nil {
		t.Errorf("valid LATE record rejected: %v", err)
	}

	// Arrival time is meaningless for any other status.
	in = validAttendanceInput()
	in.ArrivalTime = "08:45"
	if _, err := NewAttendance(in, "teacher@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("PRESENT with arrivalTime accepted: %v", err)
	}
}

func TestNewAttendanceJustifiedRules(t *testing.T) {
	in := validAttendanceInput()
	in.Status = AttendanceStatusJustified
	in.Notes = "too short"
	if _, err := NewAttendance(in, "teacher@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("short justification accepted: %v", err)
	}

	in.Notes = "medical certificate on file"
	if _, err := NewAttendance(in, "teacher@school.cl"); err != nil {
		t.Errorf("valid JUSTIFIED record rejected: %v", err)
	}
}

func TestAttendanceWithCorrection(t *testing.T) {
	record, err := NewAttendance(validAttendanceInput(), "teacher@school.cl")
	if err != nil {
		t.Fatalf("NewAttendance: %v", err)
	}

	corrected, err := record.WithCorrection(AttendanceStatusLate, "09:10", "", "inspector@school.cl")
	if err != nil {
		t.Fatalf("WithCorrection: %v", err)
	}
	if corrected.Status != AttendanceStatusLate || corrected.ArrivalTime != "09:10" {
		t.Error("correction not applied")
	}
	if corrected.StudentID != record.StudentID || corrected.CourseID != record.CourseID || !corrected.Date.Equal(record.Date) {
		t.Error("identity triple changed on correction")
	}
	if corrected.RecordedBy != record.RecordedBy {
		t.Error("original recorder lost on correction")
	}
	if corrected.UpdatedBy != "inspector@school.cl" {
		t.Error("updatedBy not set from acting user")
	}

	if _, err := record.WithCorrection("EXCUSED", "", "", "inspector@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("invalid status accepted: %v", err)
	}
}

func TestAttendanceSummaryComputeRate(t *testing.T) {
	cases := []struct {
		name    string
		summary AttendanceSummary
		want    float64
	}{
		{"empty", AttendanceSummary{}, 0},
		{"all present", AttendanceSummary{Total: 10, Present: 10}, 100},
		{"late counts as attended", AttendanceSummary{Total: 10, Present: 6, Late: 2, Absent: 2}, 80},
		{"justified does not", AttendanceSummary{Total: 4, Present: 2, Justified: 2}, 50},
		{"rounded to two decimals", AttendanceSummary{Total: 3, Present: 2}, 66.67},
	}
	for _, tc := range cases {
		tc.summary.ComputeRate()
		if tc.summary.AttendanceRate != tc.want {
			t.Errorf("%s: rate = %v, want %v", tc.name, tc.summary.AttendanceRate, tc.want)
		}
	}
}

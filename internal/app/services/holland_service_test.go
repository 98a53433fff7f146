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

func TestRegisterTest(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	repo := newFakeHollandRepo()
	svc := NewHollandService(repo, newFakeStudentRepo(student))

	in := models.HollandTestInput{
		StudentID: student.ID,
		TestDate:  time.Now().UTC().AddDate(0, -1, 0),
		Scores: models.RIASECScores{
			Realistic:     40,
			Investigative: 85,
			Artistic:      70,
			Social:        90,
			Enterprising:  55,
			Conventional:  30,
		},
		DominantTypes:   []string{"S", "I", "A"},
		Interpretation:  "Strong social and investigative orientation with artistic leanings.",
		Recommendations: []string{"Psychology", "Medicine"},
		AdministeredBy:  "counselor@school.cl",
	}

	test, err := svc.RegisterTest(context.Background(), in, "counselor@school.cl")
	if err != nil {
		t.Fatalf("RegisterTest: %v", err)
	}
	if test.HollandCode() != "SIA" {
		t.Errorf("HollandCode = %q, want SIA", test.HollandCode())
	}

	// Repeat assessments for the same student are allowed.
	in.TestDate = time.Now().UTC().AddDate(0, 0, -1)
	if _, err := svc.RegisterTest(context.Background(), in, "counselor@school.cl"); err != nil {
		t.Errorf("second assessment rejected: %v", err)
	}

	in.StudentID = "missing"
	if _, err := svc.RegisterTest(context.Background(), in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("unknown student err = %v, want business rule error", err)
	}
}

func TestListStudentTests(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	older := mustHollandTest(t, student.ID)
	older.TestDate = time.Now().UTC().AddDate(0, -3, 0)
	newer := mustHollandTest(t, student.ID)
	other := mustHollandTest(t, "someone-else")

	svc := NewHollandService(newFakeHollandRepo(older, newer, other), newFakeStudentRepo(student))

	tests, err := svc.ListStudentTests(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ListStudentTests: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("tests = %d, want 2", len(tests))
	}
	if tests[0].ID != newer.ID {
		t.Error("tests not ordered newest first")
	}

	if _, err := svc.ListStudentTests(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown student err = %v, want not found", err)
	}
}

func TestUpdateTest(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	test := mustHollandTest(t, student.ID)
	repo := newFakeHollandRepo(test)
	svc := NewHollandService(repo, newFakeStudentRepo(student))

	interpretation := "Revised reading after a follow-up session with the counselor."
	scores := dto.RIASECScoresDTO{
		Realistic:     95,
		Investigative: 80,
		Artistic:      75,
		Social:        20,
		Enterprising:  10,
		Conventional:  5,
	}
	dominant := []string{"R", "I", "A"}

	updated, err := svc.UpdateTest(context.Background(), test.ID, dto.UpdateHollandTestRequest{
		Interpretation: &interpretation,
		Scores:         &scores,
		DominantTypes:  &dominant,
	}, "admin@school.cl")
	if err != nil {
		t.Fatalf("UpdateTest: %v", err)
	}
	if updated.Interpretation != interpretation {
		t.Errorf("interpretation = %q", updated.Interpretation)
	}
	if updated.HollandCode() != "RIA" {
		t.Errorf("HollandCode = %q, want RIA", updated.HollandCode())
	}
	if updated.ID != test.ID || updated.StudentID != test.StudentID || updated.CreatedBy != test.CreatedBy {
		t.Error("update changed identity fields")
	}
	if updated.UpdatedBy != "admin@school.cl" {
		t.Errorf("updatedBy = %q", updated.UpdatedBy)
	}

	stored, err := repo.FindByID(context.Background(), test.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if stored.Interpretation != interpretation {
		t.Error("update not persisted")
	}

	// Untouched fields keep their stored values.
	if stored.AdministeredBy != test.AdministeredBy {
		t.Error("patch cleared administeredBy")
	}
}

func TestUpdateTestCannotReachInvalidated(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	test := mustHollandTest(t, student.ID)
	svc := NewHollandService(newFakeHollandRepo(test), newFakeStudentRepo(student))

	status := string(models.HollandStatusInvalidated)
	if _, err := svc.UpdateTest(context.Background(), test.ID, dto.UpdateHollandTestRequest{
		Status: &status,
	}, "admin@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("invalidate via patch err = %v, want business rule error", err)
	}
}

func TestUpdateTestInvalidatedIsImmutable(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	test := mustHollandTest(t, student.ID)
	test.Status = models.HollandStatusInvalidated
	svc := NewHollandService(newFakeHollandRepo(test), newFakeStudentRepo(student))

	interpretation := "Attempting to rewrite an invalidated assessment record."
	if _, err := svc.UpdateTest(context.Background(), test.ID, dto.UpdateHollandTestRequest{
		Interpretation: &interpretation,
	}, "admin@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("update of invalidated test err = %v, want business rule error", err)
	}

	if _, err := svc.UpdateTest(context.Background(), "missing", dto.UpdateHollandTestRequest{}, "admin@school.cl"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown test err = %v, want not found", err)
	}
}

func TestDeleteTest(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	test := mustHollandTest(t, student.ID)
	repo := newFakeHollandRepo(test)
	svc := NewHollandService(repo, newFakeStudentRepo(student))

	if err := svc.DeleteTest(context.Background(), test.ID); err != nil {
		t.Fatalf("DeleteTest: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), test.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("test still present after delete")
	}

	if err := svc.DeleteTest(context.Background(), test.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

func TestInvalidateTest(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	test := mustHollandTest(t, student.ID)
	repo := newFakeHollandRepo(test)
	svc := NewHollandService(repo, newFakeStudentRepo(student))

	invalidated, err := svc.InvalidateTest(context.Background(), test.ID, "admin@school.cl")
	if err != nil {
		t.Fatalf("InvalidateTest: %v", err)
	}
	if invalidated.Status != models.HollandStatusInvalidated {
		t.Errorf("status = %s, want INVALIDATED", invalidated.Status)
	}
	if invalidated.HollandCode() != test.HollandCode() {
		t.Error("invalidation changed test content")
	}

	// Invalidation is terminal.
	if _, err := svc.InvalidateTest(context.Background(), test.ID, "admin@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("second invalidation err = %v, want business rule error", err)
	}

	if _, err := svc.InvalidateTest(context.Background(), "missing", "admin@school.cl"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown test err = %v, want not found", err)
	}
}

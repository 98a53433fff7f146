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

func TestCreateStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := NewStudentService(repo)

	now := time.Now().UTC()
	in := models.StudentInput{
		NationalID: "12345678-5",
		FirstName:  "Ana",
		LastName:   "Soto",
		Email:      "ana.soto@school.cl",
		Phone:      "+56911112222",
		BirthDate:  now.AddDate(-12, 0, 0),
		Grade:      8,
		Section:    "A",
		Address:    "Av. Siempre Viva 742",
		EmergencyContact: models.EmergencyContact{
			Name:         "Maria Soto",
			Phone:        "+56933334444",
			Relationship: "mother",
		},
		EnrollmentDate: now.AddDate(0, -6, 0),
	}

	student, err := svc.CreateStudent(context.Background(), in, "admin@school.cl")
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	if student.Status != models.StudentStatusActive {
		t.Errorf("status = %s, want ACTIVE", student.Status)
	}

	// Same national ID again.
	if _, err := svc.CreateStudent(context.Background(), in, "admin@school.cl"); !errors.Is(err, apperrors.ErrDuplicate) {
		t.Errorf("duplicate national ID err = %v, want duplicate error", err)
	}
}

func TestListStudentsDefaultsToActive(t *testing.T) {
	active := mustStudent(t, "12345678-5")
	withdrawn := mustStudent(t, "7654321-6")
	withdrawn.Status = models.StudentStatusWithdrawn
	svc := NewStudentService(newFakeStudentRepo(active, withdrawn))

	students, total, err := svc.ListStudents(context.Background(), models.StudentFilter{})
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if total != 1 || len(students) != 1 || students[0].ID != active.ID {
		t.Errorf("default listing returned %d students, want only the active one", len(students))
	}

	_, total, err = svc.ListStudents(context.Background(), models.StudentFilter{Status: models.StudentStatusWithdrawn})
	if err != nil {
		t.Fatalf("ListStudents withdrawn: %v", err)
	}
	if total != 1 {
		t.Errorf("explicit WITHDRAWN filter total = %d, want 1", total)
	}
}

func TestUpdateStudent(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	repo := newFakeStudentRepo(student)
	svc := NewStudentService(repo)

	grade := 9
	updated, err := svc.UpdateStudent(context.Background(), student.ID,
		dto.UpdateStudentRequest{Grade: &grade}, "secretary@school.cl")
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if updated.Grade != 9 {
		t.Errorf("grade = %d, want 9", updated.Grade)
	}
	if updated.FirstName != student.FirstName {
		t.Error("untouched field changed by patch")
	}
}

func TestUpdateStudentWithdrawnIsImmutable(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	student.Status = models.StudentStatusWithdrawn
	svc := NewStudentService(newFakeStudentRepo(student))

	grade := 9
	_, err := svc.UpdateStudent(context.Background(), student.ID,
		dto.UpdateStudentRequest{Grade: &grade}, "secretary@school.cl")
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Fatalf("err = %v, want business rule error", err)
	}
}

func TestUpdateStudentCannotWithdrawViaPatch(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	svc := NewStudentService(newFakeStudentRepo(student))

	status := string(models.StudentStatusWithdrawn)
	_, err := svc.UpdateStudent(context.Background(), student.ID,
		dto.UpdateStudentRequest{Status: &status}, "secretary@school.cl")
	if !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Fatalf("err = %v, want business rule error", err)
	}
}

func TestUpdateStudentNationalIDCollision(t *testing.T) {
	first := mustStudent(t, "12345678-5")
	second := mustStudent(t, "7654321-6")
	svc := NewStudentService(newFakeStudentRepo(first, second))

	taken := first.NationalID
	_, err := svc.UpdateStudent(context.Background(), second.ID,
		dto.UpdateStudentRequest{NationalID: &taken}, "secretary@school.cl")
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("err = %v, want duplicate error", err)
	}
}

func TestRemoveStudent(t *testing.T) {
	student := mustStudent(t, "12345678-5")
	repo := newFakeStudentRepo(student)
	svc := NewStudentService(repo)

	if err := svc.RemoveStudent(context.Background(), student.ID, "admin@school.cl"); err != nil {
		t.Fatalf("RemoveStudent: %v", err)
	}

	stored := repo.students[student.ID]
	if stored.Status != models.StudentStatusWithdrawn {
		t.Errorf("status = %s, want WITHDRAWN", stored.Status)
	}

	// Withdrawal is terminal.
	if err := svc.RemoveStudent(context.Background(), student.ID, "admin@school.cl"); !errors.Is(err, apperrors.ErrBusinessRule) {
		t.Errorf("second removal err = %v, want business rule error", err)
	}
}

func TestGetStudentByIDNotFound(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())
	if _, err := svc.GetStudentByID(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

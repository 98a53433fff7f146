package models

import (
	"errors"
	"testing"
	"time"

	"github.com/emre/scholaris/internal/pkg/apperrors"
)

func validHollandInput() HollandTestInput {
	return HollandTestInput{
		StudentID: "student-1",
		TestDate:  time.Now().UTC().AddDate(0, -1, 0),
		Scores: RIASECScores{
			Realistic:     40,
			Investigative: 85,
			Artistic:      70,
			Social:        90,
			Enterprising:  55,
			Conventional:  30,
		},
		DominantTypes:   []string{"S", "I", "A"},
		Interpretation:  "Strong social and investigative orientation with artistic leanings.",
		Recommendations: []string{"Psychology", "Medicine", "Education"},
		AdministeredBy:  "counselor@school.cl",
	}
}

func TestRIASECTopThree(t *testing.T) {
	cases := []struct {
		name   string
		scores RIASECScores
		want   [3]string
	}{
		{
			"distinct scores",
			RIASECScores{Realistic: 40, Investigative: 85, Artistic: 70, Social: 90, Enterprising: 55, Conventional: 30},
			[3]string{"S", "I", "A"},
		},
		{
			"ties break in fixed order",
			RIASECScores{Realistic: 80, Investigative: 80, Artistic: 80, Social: 80, Enterprising: 80, Conventional: 80},
			[3]string{"R", "I", "A"},
		},
		{
			"partial tie",
			RIASECScores{Realistic: 50, Investigative: 90, Artistic: 70, Social: 70, Enterprising: 70, Conventional: 10},
			[3]string{"I", "A", "S"},
		},
	}
	for _, tc := range cases {
		got := tc.scores.TopThree()
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%s: TopThree = %v, want %v", tc.name, got, tc.want)
				break
			}
		}
	}
}

func TestNewHollandTest(t *testing.T) {
	test, err := NewHollandTest(validHollandInput(), "counselor@school.cl")
	if err != nil {
		t.Fatalf("NewHollandTest: %v", err)
	}
	if test.Status != HollandStatusComplete {
		t.Errorf("status = %s, want COMPLETE default", test.Status)
	}
	if test.HollandCode() != "SIA" {
		t.Errorf("HollandCode = %q, want SIA (caller order preserved)", test.HollandCode())
	}
	if test.PrimaryType() != "S" || test.SecondaryType() != "I" || test.TertiaryType() != "A" {
		t.Error("dominant type accessors out of order")
	}
}

func TestNewHollandTestDominantTypeSet(t *testing.T) {
	// Any ordering of the correct set is accepted.
	in := validHollandInput()
	in.DominantTypes = []string{"A", "S", "I"}
	if _, err := NewHollandTest(in, "counselor@school.cl"); err != nil {
		t.Errorf("reordered dominant types rejected: %v", err)
	}

	in = validHollandInput()
	in.DominantTypes = []string{"S", "I", "E"}
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("wrong dominant set accepted: %v", err)
	}

	in = validHollandInput()
	in.DominantTypes = []string{"S", "S", "I"}
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("duplicate dominant types accepted: %v", err)
	}

	in = validHollandInput()
	in.DominantTypes = []string{"S", "I"}
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("two dominant types accepted: %v", err)
	}

	in = validHollandInput()
	in.DominantTypes = []string{"S", "I", "X"}
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("non-RIASEC code accepted: %v", err)
	}
}

func TestNewHollandTestScoreBounds(t *testing.T) {
	in := validHollandInput()
	in.Scores.Social = 101
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("score over 100 accepted: %v", err)
	}

	in = validHollandInput()
	in.Scores.Conventional = -1
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("negative score accepted: %v", err)
	}
}

func TestNewHollandTestDateRules(t *testing.T) {
	in := validHollandInput()
	in.TestDate = time.Now().UTC().AddDate(0, 0, 1)
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("future test date accepted: %v", err)
	}

	in = validHollandInput()
	in.TestDate = time.Now().UTC().AddDate(-5, 0, -1)
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("test older than five years accepted: %v", err)
	}
}

func TestNewHollandTestContentRules(t *testing.T) {
	in := validHollandInput()
	in.Interpretation = "too short"
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("short interpretation accepted: %v", err)
	}

	in = validHollandInput()
	in.Recommendations = nil
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("empty recommendations accepted: %v", err)
	}

	in = validHollandInput()
	in.Recommendations = make([]string, HollandMaxRecommendations+1)
	for i := range in.Recommendations {
		in.Recommendations[i] = "Engineering"
	}
	if _, err := NewHollandTest(in, "counselor@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("oversized recommendations accepted: %v", err)
	}
}

func TestHollandTestWithUpdate(t *testing.T) {
	test, err := NewHollandTest(validHollandInput(), "counselor@school.cl")
	if err != nil {
		t.Fatalf("NewHollandTest: %v", err)
	}

	in := validHollandInput()
	in.Scores = RIASECScores{Realistic: 95, Investigative: 80, Artistic: 75, Social: 20, Enterprising: 10, Conventional: 5}
	in.DominantTypes = []string{"R", "I", "A"}
	in.StudentID = "someone-else"

	updated, err := test.WithUpdate(in, HollandStatusIncomplete, "admin@school.cl")
	if err != nil {
		t.Fatalf("WithUpdate: %v", err)
	}
	if updated.HollandCode() != "RIA" {
		t.Errorf("HollandCode = %q, want RIA", updated.HollandCode())
	}
	if updated.Status != HollandStatusIncomplete {
		t.Errorf("status = %s, want INCOMPLETE", updated.Status)
	}
	// The student link and creation audit fields survive any input.
	if updated.StudentID != test.StudentID {
		t.Errorf("studentID = %q, want %q", updated.StudentID, test.StudentID)
	}
	if updated.ID != test.ID || updated.CreatedBy != test.CreatedBy || !updated.CreatedAt.Equal(test.CreatedAt) {
		t.Error("update changed identity fields")
	}
	if updated.UpdatedBy != "admin@school.cl" {
		t.Errorf("updatedBy = %q", updated.UpdatedBy)
	}
	if test.HollandCode() != "SIA" {
		t.Error("original test mutated")
	}

	in = validHollandInput()
	in.DominantTypes = []string{"S", "I", "E"}
	if _, err := test.WithUpdate(in, HollandStatusComplete, "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("wrong dominant set accepted: %v", err)
	}

	if _, err := test.WithUpdate(validHollandInput(), "BROKEN", "admin@school.cl"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("unknown status accepted: %v", err)
	}
}

func TestHollandTestInvalidated(t *testing.T) {
	test, err := NewHollandTest(validHollandInput(), "counselor@school.cl")
	if err != nil {
		t.Fatalf("NewHollandTest: %v", err)
	}

	invalidated := test.Invalidated("admin@school.cl")
	if invalidated.Status != HollandStatusInvalidated {
		t.Errorf("status = %s, want INVALIDATED", invalidated.Status)
	}
	if invalidated.ID != test.ID || invalidated.HollandCode() != test.HollandCode() {
		t.Error("invalidation changed test content")
	}
	if test.Status != HollandStatusComplete {
		t.Error("original test mutated")
	}
}

package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emre/scholaris/internal/pkg/apperrors"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// HollandStatus represents the lifecycle state of a vocational test.
type HollandStatus string

const (
	HollandStatusComplete    HollandStatus = "COMPLETE"
	HollandStatusIncomplete  HollandStatus = "INCOMPLETE"
	HollandStatusInvalidated HollandStatus = "INVALIDATED"
)

// Valid returns true when the status is a supported value.
func (s HollandStatus) Valid() bool {
	switch s {
	case HollandStatusComplete, HollandStatusIncomplete, HollandStatusInvalidated:
		return true
	default:
		return false
	}
}

// RIASECDimensions is the fixed dimension order. It doubles as the
// tie-break order when scores are equal: the ranking is a stable
// descending sort over this sequence.
var RIASECDimensions = []string{"R", "I", "A", "S", "E", "C"}

// RIASECScores holds the six dimension scores of one assessment.
type RIASECScores struct {
	Realistic     int `json:"realistic" db:"realistic"`
	Investigative int `json:"investigative" db:"investigative"`
	Artistic      int `json:"artistic" db:"artistic"`
	Social        int `json:"social" db:"social"`
	Enterprising  int `json:"enterprising" db:"enterprising"`
	Conventional  int `json:"conventional" db:"conventional"`
}

// byDimension returns the score for a dimension code.
func (s RIASECScores) byDimension(code string) int {
	switch code {
	case "R":
		return s.Realistic
	case "I":
		return s.Investigative
	case "A":
		return s.Artistic
	case "S":
		return s.Social
	case "E":
		return s.Enterprising
	default:
		return s.Conventional
	}
}

// TopThree returns the three highest-scoring dimension codes. Equal scores
// rank in fixed R,I,A,S,E,C order.
func (s RIASECScores) TopThree() []string {
	ranked := make([]string, len(RIASECDimensions))
	copy(ranked, RIASECDimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return s.byDimension(ranked[i]) > s.byDimension(ranked[j])
	})
	return ranked[:3]
}

// Holland test bounds.
const (
	HollandScoreMin              = 0
	HollandScoreMax              = 100
	HollandMaxTestAgeYears       = 5
	HollandInterpretationMinLen  = 20
	HollandMaxRecommendations    = 10
	HollandDominantTypeCount     = 3
)

// HollandTest is an immutable, validated vocational-interest assessment.
type HollandTest struct {
	ID              string        `json:"id" db:"id"`
	StudentID       string        `json:"studentId" db:"student_id"`
	TestDate        time.Time     `json:"testDate" db:"test_date"`
	Scores          RIASECScores  `json:"scores"`
	DominantTypes   []string      `json:"dominantTypes"`
	Interpretation  string        `json:"interpretation" db:"interpretation"`
	Recommendations []string      `json:"recommendations"`
	Status          HollandStatus `json:"status" db:"status"`
	AdministeredBy  string        `json:"administeredBy" db:"administered_by"`
	CreatedBy       string        `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedBy       string        `json:"updatedBy" db:"updated_by"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// HollandTestInput carries the caller-supplied fields for an assessment.
type HollandTestInput struct {
	StudentID       string
	TestDate        time.Time
	Scores          RIASECScores
	DominantTypes   []string
	Interpretation  string
	Recommendations []string
	Status          HollandStatus
	AdministeredBy  string
}

// NewHollandTest builds a validated assessment or returns the first
// violated rule as a ValidationError. The supplied dominant types must
// equal, as a set, the three highest-scoring dimensions; the caller's
// ordering is preserved as the Holland code.
func NewHollandTest(in HollandTestInput, createdBy string) (*HollandTest, error) {
	if err := validateHollandTestInput(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = HollandStatusComplete
	}

	now := time.Now().UTC()
	return &HollandTest{
		ID:              uuid.NewString(),
		StudentID:       in.StudentID,
		TestDate:        dayOf(in.TestDate),
		Scores:          in.Scores,
		DominantTypes:   in.DominantTypes,
		Interpretation:  strings.TrimSpace(in.Interpretation),
		Recommendations: in.Recommendations,
		Status:          status,
		AdministeredBy:  strings.TrimSpace(in.AdministeredBy),
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedBy:       createdBy,
		UpdatedAt:       now,
	}, nil
}

// WithUpdate builds a validated replacement for an existing test,
// preserving identity, the student link and creation audit fields.
func (t *HollandTest) WithUpdate(in HollandTestInput, status HollandStatus, updatedBy string) (*HollandTest, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be one of COMPLETE, INCOMPLETE, INVALIDATED")
	}
	in.StudentID = t.StudentID
	in.Status = status
	if err := validateHollandTestInput(in); err != nil {
		return nil, err
	}

	updated := *t
	updated.TestDate = dayOf(in.TestDate)
	updated.Scores = in.Scores
	updated.DominantTypes = in.DominantTypes
	updated.Interpretation = strings.TrimSpace(in.Interpretation)
	updated.Recommendations = in.Recommendations
	updated.Status = status
	updated.AdministeredBy = strings.TrimSpace(in.AdministeredBy)
	updated.UpdatedBy = updatedBy
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

// Invalidated builds the INVALIDATED terminal copy of the test.
func (t *HollandTest) Invalidated(updatedBy string) *HollandTest {
	invalidated := *t
	invalidated.Status = HollandStatusInvalidated
	invalidated.UpdatedBy = updatedBy
	invalidated.UpdatedAt = time.Now().UTC()
	return &invalidated
}

// HollandCode returns the concatenated dominant types in caller order.
func (t *HollandTest) HollandCode() string {
	return strings.Join(t.DominantTypes, "")
}

// PrimaryType returns the strongest dominant type.
func (t *HollandTest) PrimaryType() string { return t.DominantTypes[0] }

// SecondaryType returns the second dominant type.
func (t *HollandTest) SecondaryType() string { return t.DominantTypes[1] }

// TertiaryType returns the third dominant type.
func (t *HollandTest) TertiaryType() string { return t.DominantTypes[2] }

func validateHollandTestInput(in HollandTestInput) error {
	if strings.TrimSpace(in.StudentID) == "" {
		return apperrors.NewValidationError("studentId", "is required")
	}
	if in.TestDate.IsZero() {
		return apperrors.NewValidationError("testDate", "is required")
	}
	now := time.Now().UTC()
	if dayOf(in.TestDate).After(dayOf(now)) {
		return apperrors.NewValidationError("testDate", "cannot be in the future")
	}
	if dayOf(in.TestDate).Before(dayOf(now).AddDate(-HollandMaxTestAgeYears, 0, 0)) {
		return apperrors.NewValidationError("testDate", "cannot be more than five years old")
	}
	for _, code := range RIASECDimensions {
		if score := in.Scores.byDimension(code); score < HollandScoreMin || score > HollandScoreMax {
			return apperrors.NewValidationError("scores", "every dimension score must be between 0 and 100")
		}
	}
	if err := validateDominantTypes(in.Scores, in.DominantTypes); err != nil {
		return err
	}
	if len(strings.TrimSpace(in.Interpretation)) < HollandInterpretationMinLen {
		return apperrors.NewValidationError("interpretation", "must be at least 20 characters")
	}
	if len(in.Recommendations) < 1 || len(in.Recommendations) > HollandMaxRecommendations {
		return apperrors.NewValidationError("recommendations", "must contain between 1 and 10 entries")
	}
	for _, rec := range in.Recommendations {
		if strings.TrimSpace(rec) == "" {
			return apperrors.NewValidationError("recommendations", "entries cannot be empty")
		}
	}
	if in.Status != "" && !in.Status.Valid() {
		return apperrors.NewValidationError("status", "must be one of COMPLETE, INCOMPLETE, INVALIDATED")
	}
	if !validation.IsEmail(strings.TrimSpace(in.AdministeredBy)) {
		return apperrors.NewValidationError("administeredBy", "must be a valid email address")
	}
	return nil
}

func validateDominantTypes(scores RIASECScores, dominant []string) error {
	if len(dominant) != HollandDominantTypeCount {
		return apperrors.NewValidationError("dominantTypes", "exactly three types are required")
	}
	seen := make(map[string]struct{}, HollandDominantTypeCount)
	for _, code := range dominant {
		if !isRIASECCode(code) {
			return apperrors.NewValidationError("dominantTypes", "types must be RIASEC codes")
		}
		if _, dup := seen[code]; dup {
			return apperrors.NewValidationError("dominantTypes", "types must be unique")
		}
		seen[code] = struct{}{}
	}

	// Set comparison: the caller may order the three however they like,
	// but the set must match the computed ranking.
	for _, code := range scores.TopThree() {
		if _, ok := seen[code]; !ok {
			return apperrors.NewValidationError("dominantTypes", "must equal the three highest-scoring dimensions")
		}
	}
	return nil
}

func isRIASECCode(code string) bool {
	for _, c := range RIASECDimensions {
		if c == code {
			return true
		}
	}
	return false
}

// HollandFilter scopes assessment listing queries.
type HollandFilter struct {
	StudentID string
	Status    HollandStatus
	Page      int
	PageSize  int
}

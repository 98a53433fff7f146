package dto

import (
	"github.com/emre/scholaris/internal/app/models"
)

// RIASECScoresDTO mirrors the six dimension scores of an assessment.
type RIASECScoresDTO struct {
	Realistic     int `json:"realistic" binding:"min=0,max=100" example:"90"`
	Investigative int `json:"investigative" binding:"min=0,max=100" example:"80"`
	Artistic      int `json:"artistic" binding:"min=0,max=100" example:"70"`
	Social        int `json:"social" binding:"min=0,max=100" example:"10"`
	Enterprising  int `json:"enterprising" binding:"min=0,max=100" example:"5"`
	Conventional  int `json:"conventional" binding:"min=0,max=100" example:"1"`
}

// CreateHollandTestRequest is the payload for registering an assessment.
type CreateHollandTestRequest struct {
	StudentID       string          `json:"studentId" binding:"required"`
	TestDate        string          `json:"testDate" binding:"required" example:"2026-08-20"`
	Scores          RIASECScoresDTO `json:"scores" binding:"required"`
	DominantTypes   []string        `json:"dominantTypes" binding:"required,len=3" example:"R,I,A"`
	Interpretation  string          `json:"interpretation" binding:"required,min=20"`
	Recommendations []string        `json:"recommendations" binding:"required,min=1,max=10"`
	Status          string          `json:"status,omitempty" example:"COMPLETE"`
	AdministeredBy  string          `json:"administeredBy" binding:"required,email" example:"counselor@school.cl"`
}

// ToInput parses the wire shape into a factory input.
func (r CreateHollandTestRequest) ToInput() (models.HollandTestInput, error) {
	testDate, err := parseDate(r.TestDate)
	if err != nil {
		return models.HollandTestInput{}, err
	}
	return models.HollandTestInput{
		StudentID: r.StudentID,
		TestDate:  testDate,
		Scores: models.RIASECScores{
			Realistic:     r.Scores.Realistic,
			Investigative: r.Scores.Investigative,
			Artistic:      r.Scores.Artistic,
			Social:        r.Scores.Social,
			Enterprising:  r.Scores.Enterprising,
			Conventional:  r.Scores.Conventional,
		},
		DominantTypes:   r.DominantTypes,
		Interpretation:  r.Interpretation,
		Recommendations: r.Recommendations,
		Status:          models.HollandStatus(r.Status),
		AdministeredBy:  r.AdministeredBy,
	}, nil
}

// UpdateHollandTestRequest is the partial-patch payload for an assessment.
// The student link never changes; nil fields keep their stored value and
// the merged result is re-validated.
type UpdateHollandTestRequest struct {
	TestDate        *string          `json:"testDate,omitempty"`
	Scores          *RIASECScoresDTO `json:"scores,omitempty"`
	DominantTypes   *[]string        `json:"dominantTypes,omitempty"`
	Interpretation  *string          `json:"interpretation,omitempty"`
	Recommendations *[]string        `json:"recommendations,omitempty"`
	Status          *string          `json:"status,omitempty" example:"INCOMPLETE"`
	AdministeredBy  *string          `json:"administeredBy,omitempty"`
}

// MergeInto overlays the patch onto the stored assessment and returns the
// merged factory input plus the target status.
func (r UpdateHollandTestRequest) MergeInto(existing *models.HollandTest) (models.HollandTestInput, models.HollandStatus, error) {
	in := models.HollandTestInput{
		StudentID:       existing.StudentID,
		TestDate:        existing.TestDate,
		Scores:          existing.Scores,
		DominantTypes:   existing.DominantTypes,
		Interpretation:  existing.Interpretation,
		Recommendations: existing.Recommendations,
		AdministeredBy:  existing.AdministeredBy,
	}

	if r.TestDate != nil {
		testDate, err := parseDate(*r.TestDate)
		if err != nil {
			return models.HollandTestInput{}, "", err
		}
		in.TestDate = testDate
	}
	if r.Scores != nil {
		in.Scores = models.RIASECScores{
			Realistic:     r.Scores.Realistic,
			Investigative: r.Scores.Investigative,
			Artistic:      r.Scores.Artistic,
			Social:        r.Scores.Social,
			Enterprising:  r.Scores.Enterprising,
			Conventional:  r.Scores.Conventional,
		}
	}
	if r.DominantTypes != nil {
		in.DominantTypes = *r.DominantTypes
	}
	if r.Interpretation != nil {
		in.Interpretation = *r.Interpretation
	}
	if r.Recommendations != nil {
		in.Recommendations = *r.Recommendations
	}
	if r.AdministeredBy != nil {
		in.AdministeredBy = *r.AdministeredBy
	}

	status := existing.Status
	if r.Status != nil {
		status = models.HollandStatus(*r.Status)
	}
	return in, status, nil
}

// HollandTestResponse decorates a stored assessment with its derived
// Holland code and type accessors.
type HollandTestResponse struct {
	*models.HollandTest
	HollandCode   string `json:"hollandCode" example:"RIA"`
	PrimaryType   string `json:"primaryType" example:"R"`
	SecondaryType string `json:"secondaryType" example:"I"`
	TertiaryType  string `json:"tertiaryType" example:"A"`
}

// NewHollandTestResponse builds the decorated response shape.
func NewHollandTestResponse(test *models.HollandTest) HollandTestResponse {
	return HollandTestResponse{
		HollandTest:   test,
		HollandCode:   test.HollandCode(),
		PrimaryType:   test.PrimaryType(),
		SecondaryType: test.SecondaryType(),
		TertiaryType:  test.TertiaryType(),
	}
}

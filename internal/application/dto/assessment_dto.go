package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/domain/model"
)

// AssessLoanApplicationRequest is the input DTO for AssessLoanApplication.
// When Profile is nil the farmer profile is assembled from the record
// stores, with LoanAmount as the requested amount.
type AssessLoanApplicationRequest struct {
	Profile       *model.FarmerData `json:"profile,omitempty"`
	Currency      string            `json:"currency"`
	LoanAmount    float64           `json:"loan_amount"`
	TenantID      uuid.UUID         `json:"tenant_id"`
	FarmerID      uuid.UUID         `json:"farmer_id"`
	ApplicationID uuid.UUID         `json:"application_id"`
}

// AssessmentResponse is the output DTO for a persisted assessment.
type AssessmentResponse struct {
	AssessedAt        time.Time     `json:"assessed_at"`
	CreatedAt         time.Time     `json:"created_at"`
	Result            ScoreResponse `json:"result"`
	Status            string        `json:"status"`
	RequestedAmount   string        `json:"requested_amount"`
	RecommendedAmount string        `json:"recommended_amount"`
	Currency          string        `json:"currency"`
	ApplicationID     string        `json:"application_id,omitempty"`
	ID                uuid.UUID     `json:"id"`
	TenantID          uuid.UUID     `json:"tenant_id"`
	FarmerID          uuid.UUID     `json:"farmer_id"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// ListFarmerAssessmentsRequest pages through one farmer's assessments.
type ListFarmerAssessmentsRequest struct {
	TenantID uuid.UUID `json:"tenant_id"`
	FarmerID uuid.UUID `json:"farmer_id"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ListAssessmentsResponse is a page of assessments.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// FromModel maps the aggregate to the response DTO.
func FromModel(a *model.CreditAssessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:                a.ID(),
		TenantID:          a.TenantID(),
		FarmerID:          a.FarmerID(),
		Status:            string(a.Status()),
		RequestedAmount:   a.Requested().Amount().StringFixed(2),
		RecommendedAmount: a.Recommended().Amount().StringFixed(2),
		Currency:          a.Requested().Currency().Code(),
		Result:            FromResult(a.Result()),
		AssessedAt:        a.AssessedAt(),
		CreatedAt:         a.CreatedAt(),
	}
	if a.ApplicationID() != uuid.Nil {
		resp.ApplicationID = a.ApplicationID().String()
	}
	return resp
}

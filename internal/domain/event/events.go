package event

import (
	"github.com/shopspring/decimal"

	"github.com/farmcred/scoring/pkg/events"
)

const (
	EventTypeAssessmentCompleted = "scoring.assessment.completed"
	EventTypeTrainingRecommended = "scoring.farmer.training_recommended"

	aggregateType = "CreditAssessment"
)

// AssessmentCompleted is published once a loan request has been scored.
type AssessmentCompleted struct {
	events.BaseEvent
	FarmerID              string          `json:"farmer_id"`
	ApplicationID         string          `json:"application_id,omitempty"`
	RiskBand              string          `json:"risk_band"`
	Currency              string          `json:"currency"`
	RequestedAmount       decimal.Decimal `json:"requested_amount"`
	RecommendedLoanAmount decimal.Decimal `json:"recommended_loan_amount"`
	InterestRate          float64         `json:"interest_rate"`
	Score                 int             `json:"score"`
}

func NewAssessmentCompleted(
	assessmentID, tenantID, farmerID, applicationID string,
	score int, band string, interestRate float64,
	requested, recommended decimal.Decimal, currency string,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:             events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, aggregateType, tenantID),
		FarmerID:              farmerID,
		ApplicationID:         applicationID,
		Score:                 score,
		RiskBand:              band,
		InterestRate:          interestRate,
		RequestedAmount:       requested,
		RecommendedLoanAmount: recommended,
		Currency:              currency,
	}
}

// TrainingRecommended asks the cooperative to enrol a Red-band farmer in
// training before or alongside any reduced offer.
type TrainingRecommended struct {
	events.BaseEvent
	FarmerID      string   `json:"farmer_id"`
	WeakestFactor string   `json:"weakest_factor"`
	Gaps          []string `json:"gaps"`
	Score         int      `json:"score"`
}

func NewTrainingRecommended(assessmentID, tenantID, farmerID string, score int, weakest string, gaps []string) TrainingRecommended {
	return TrainingRecommended{
		BaseEvent:     events.NewBaseEvent(EventTypeTrainingRecommended, assessmentID, aggregateType, tenantID),
		FarmerID:      farmerID,
		Score:         score,
		WeakestFactor: weakest,
		Gaps:          gaps,
	}
}

package grpc

import (
	"time"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
)

// Proto-aligned request/response message types.

type ScoreFarmerRequest struct {
	Profile *model.FarmerData `json:"profile"`
}

type ScoreFarmerResponse struct {
	Score *CreditScoreMsg `json:"score"`
}

type AssessLoanApplicationRequest struct {
	Profile       *model.FarmerData `json:"profile,omitempty"`
	FarmerID      string            `json:"farmer_id"`
	ApplicationID string            `json:"application_id,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	LoanAmount    float64           `json:"loan_amount"`
}

type AssessLoanApplicationResponse struct {
	Assessment *CreditAssessmentMsg `json:"assessment"`
}

type GetAssessmentRequest struct {
	ID string `json:"id"`
}

type GetAssessmentResponse struct {
	Assessment *CreditAssessmentMsg `json:"assessment"`
}

type ListFarmerAssessmentsRequest struct {
	FarmerID string `json:"farmer_id"`
	PageSize int32  `json:"page_size"`
	Offset   int32  `json:"offset"`
}

type ListFarmerAssessmentsResponse struct {
	Assessments []*CreditAssessmentMsg `json:"assessments"`
	PageSize    int32                  `json:"page_size"`
	Offset      int32                  `json:"offset"`
}

// SubscoresMsg represents the proto Subscores message.
type SubscoresMsg struct {
	Identity int32 `json:"identity"`
	Assets   int32 `json:"assets"`
	History  int32 `json:"history"`
	Trust    int32 `json:"trust"`
	Capacity int32 `json:"capacity"`
}

// CreditScoreMsg represents the proto CreditScore message.
type CreditScoreMsg struct {
	Subscores             *SubscoresMsg     `json:"subscores"`
	Explanation           map[string]string `json:"explanation"`
	RiskBand              string            `json:"risk_band"`
	Score                 int32             `json:"score"`
	RecommendedLoanAmount int64             `json:"recommended_loan_amount"`
	InterestRate          float64           `json:"interest_rate"`
}

// MoneyMsg represents the proto Money message.
type MoneyMsg struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// CreditAssessmentMsg represents the proto CreditAssessment message.
type CreditAssessmentMsg struct {
	Score         *CreditScoreMsg `json:"score"`
	Requested     *MoneyMsg       `json:"requested"`
	Recommended   *MoneyMsg       `json:"recommended"`
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	FarmerID      string          `json:"farmer_id"`
	ApplicationID string          `json:"application_id,omitempty"`
	Status        string          `json:"status"`
	AssessedAt    string          `json:"assessed_at"`
}

func toScoreMsg(r dto.ScoreResponse) *CreditScoreMsg {
	return &CreditScoreMsg{
		Score:    int32(r.Score),
		RiskBand: r.RiskBand,
		Subscores: &SubscoresMsg{
			Identity: int32(r.Subscores.Identity),
			Assets:   int32(r.Subscores.Assets),
			History:  int32(r.Subscores.History),
			Trust:    int32(r.Subscores.Trust),
			Capacity: int32(r.Subscores.Capacity),
		},
		Explanation:           r.Explanation,
		RecommendedLoanAmount: r.RecommendedLoanAmount,
		InterestRate:          r.InterestRate,
	}
}

func toAssessmentMsg(a dto.AssessmentResponse) *CreditAssessmentMsg {
	return &CreditAssessmentMsg{
		ID:            a.ID.String(),
		TenantID:      a.TenantID.String(),
		FarmerID:      a.FarmerID.String(),
		ApplicationID: a.ApplicationID,
		Status:        a.Status,
		Score:         toScoreMsg(a.Result),
		Requested:     &MoneyMsg{Amount: a.RequestedAmount, Currency: a.Currency},
		Recommended:   &MoneyMsg{Amount: a.RecommendedAmount, Currency: a.Currency},
		AssessedAt:    a.AssessedAt.Format(time.RFC3339),
	}
}

package dto

import (
	"github.com/farmcred/scoring/internal/domain/model"
)

// ScoreFarmerRequest is the input DTO for a stateless score preview.
type ScoreFarmerRequest struct {
	Profile model.FarmerData `json:"profile"`
}

// FactorResponse is one explanation item.
type FactorResponse struct {
	Factor       string  `json:"factor"`
	Detail       string  `json:"detail"`
	Contribution float64 `json:"contribution"`
	Included     bool    `json:"included"`
	Points       float64 `json:"points,omitempty"`
}

// ScoreResponse is the wire form of a CreditScoreResult.
type ScoreResponse struct {
	Subscores             model.Subscores             `json:"subscores"`
	Explanation           map[string]string           `json:"explanation"`
	Factors               map[string][]FactorResponse `json:"factors"`
	RiskBand              string                      `json:"risk_band"`
	Score                 int                         `json:"score"`
	RecommendedLoanAmount int64                       `json:"recommended_loan_amount"`
	InterestRate          float64                     `json:"interest_rate"`
	Cached                bool                        `json:"cached,omitempty"`
}

// FromResult maps an engine result to the response DTO.
func FromResult(r model.CreditScoreResult) ScoreResponse {
	resp := ScoreResponse{
		Score:                 r.Score,
		RiskBand:              r.RiskBand.DisplayName(),
		Subscores:             r.Subscores,
		RecommendedLoanAmount: r.RecommendedLoanAmount,
		InterestRate:          r.InterestRate,
		Explanation:           make(map[string]string, len(r.Explanation)),
		Factors:               make(map[string][]FactorResponse, len(r.Explanation)),
	}

	for key, text := range r.Explanation.Render() {
		resp.Explanation[string(key)] = text
	}
	for key, factors := range r.Explanation {
		out := make([]FactorResponse, 0, len(factors))
		for _, f := range factors {
			out = append(out, FactorResponse{
				Factor:       f.Name,
				Detail:       f.Detail,
				Contribution: f.Contribution,
				Included:     f.Included,
				Points:       f.Points,
			})
		}
		resp.Factors[string(key)] = out
	}

	return resp
}

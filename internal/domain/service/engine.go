package service

import (
	"github.com/shopspring/decimal"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/valueobject"
)

// CreditScorer computes a credit score for a farmer profile.
type CreditScorer interface {
	Score(input model.FarmerData) (model.CreditScoreResult, error)
}

// Engine is the stateless CreditScorer. The zero value is ready to use and
// safe for concurrent callers.
type Engine struct{}

// NewEngine returns a scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score implements CreditScorer.
func (Engine) Score(input model.FarmerData) (model.CreditScoreResult, error) {
	return ComputeCreditScore(input)
}

// ComputeCreditScore runs the five subscore calculators, sums them and
// classifies the total into a risk band. It fails only with
// *model.InvalidInputError, when a divisor is zero or a number is not finite.
func ComputeCreditScore(input model.FarmerData) (model.CreditScoreResult, error) {
	if err := input.CheckComputable(); err != nil {
		return model.CreditScoreResult{}, err
	}

	identity, identityFactors := identityScore(input)
	assets, assetFactors := assetsScore(input)
	history, historyFactors := historyScore(input)
	trust, trustFactors := trustScore(input)
	capacity, capacityFactors := capacityScore(input)

	subscores := model.Subscores{
		Identity: identity,
		Assets:   assets,
		History:  history,
		Trust:    trust,
		Capacity: capacity,
	}
	score := subscores.Total()
	band := valueobject.BandForScore(score)

	return model.CreditScoreResult{
		Score:                 score,
		RiskBand:              band,
		Subscores:             subscores,
		RecommendedLoanAmount: RecommendedAmount(input.LoanAmount, band),
		InterestRate:          band.InterestRate(),
		Explanation: model.Explanation{
			model.KeyIdentity: identityFactors,
			model.KeyAssets:   assetFactors,
			model.KeyHistory:  historyFactors,
			model.KeyTrust:    trustFactors,
			model.KeyCapacity: capacityFactors,
		},
	}, nil
}

// RecommendedAmount scales the requested amount by the band multiplier and
// rounds the exact product half-up to whole currency units. The requested
// amount is not rounded first.
func RecommendedAmount(requested float64, band valueobject.RiskBand) int64 {
	return decimal.NewFromFloat(requested).Mul(band.LoanMultiplier()).Round(0).IntPart()
}

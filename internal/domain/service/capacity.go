package service

import (
	"fmt"

	"github.com/farmcred/scoring/internal/domain/model"
)

// The ratio and stability components are scaled from the 0-100 normalized
// value, so either alone can exceed the subscore cap; the cap is applied to
// the sum.
const (
	ratioScale     = 7.5
	stabilityScale = 4.5
	weatherPoints  = 3.0

	maxLoanShare      = 0.8
	minPriceStability = 0.7
)

func capacityScore(d model.FarmerData) (int, []model.Factor) {
	loanRatio := d.LoanAmount / d.ProjectedRevenue
	ratioPoints := normalize(1-loanRatio, 0, maxLoanShare) * ratioScale

	cv := coefficientOfVariation(d.MarketPrices)
	stabilityPoints := normalize(1-cv, minPriceStability, 1) * stabilityScale

	weather := (100 - clamp(d.WeatherRisk, 0, 100)) / 100 * weatherPoints

	factors := []model.Factor{
		{
			Name:         "loan_revenue_ratio",
			Detail:       fmt.Sprintf("Loan/revenue ratio: %.0f%%", loanRatio*100),
			Contribution: ratioPoints,
			Included:     ratioPoints > 0,
		},
		{
			Name:         "market_price_stability",
			Detail:       fmt.Sprintf("Market price variation: %.0f%%", cv*100),
			Contribution: stabilityPoints,
			Included:     len(d.MarketPrices) > 1,
		},
		{
			Name:         "weather_risk",
			Detail:       fmt.Sprintf("Weather risk: %g%%", d.WeatherRisk),
			Contribution: weather,
			Included:     true,
		},
	}

	return capAndRound(ratioPoints+stabilityPoints+weather, model.CapacityCap), factors
}

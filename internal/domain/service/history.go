package service

import (
	"fmt"

	"github.com/farmcred/scoring/internal/domain/model"
)

const (
	// newFarmerBase is half the history cap, granted when there is no
	// track record yet.
	newFarmerBase = 12.5

	// neutralRepayment is used when yields exist but no loan has been repaid.
	neutralRepayment = 5.0

	minYieldRatio = 0.7
	maxYieldRatio = 1.3
)

func historyScore(d model.FarmerData) (int, []model.Factor) {
	if len(d.YieldHistory) == 0 {
		return capAndRound(newFarmerBase, model.HistoryCap), []model.Factor{{
			Name:         "new_farmer",
			Detail:       fmt.Sprintf("New farmer - using base score (%g/%d)", newFarmerBase, model.HistoryCap),
			Contribution: newFarmerBase,
			Included:     true,
		}}
	}

	ratio := mean(d.YieldHistory) / d.CooperativeYieldAvg
	yieldPoints := normalize(ratio, minYieldRatio, maxYieldRatio) * 0.15

	repayment := model.Factor{
		Name:         "repayment_rate",
		Detail:       "Repayment rate: no loans on record",
		Contribution: neutralRepayment,
	}
	if len(d.RepaymentHistory) > 0 {
		avg := mean(d.RepaymentHistory)
		repayment.Detail = fmt.Sprintf("Repayment rate: %.0f%%", avg)
		repayment.Contribution = clamp(avg, 0, 100) / 100 * 10
		repayment.Included = true
	}

	factors := []model.Factor{
		{
			Name:         "yield_ratio",
			Detail:       fmt.Sprintf("Yield vs cooperative avg: %.0f%%", ratio*100),
			Contribution: yieldPoints,
			Included:     true,
		},
		repayment,
	}

	return capAndRound(yieldPoints+repayment.Contribution, model.HistoryCap), factors
}

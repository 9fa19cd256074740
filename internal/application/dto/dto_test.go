package dto_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/valueobject"
	"github.com/farmcred/scoring/pkg/money"
)

func sampleResult() model.CreditScoreResult {
	return model.CreditScoreResult{
		Score:                 58,
		RiskBand:              valueobject.RiskBandYellow,
		Subscores:             model.Subscores{Identity: 10, Assets: 8, History: 13, Trust: 12, Capacity: 15},
		RecommendedLoanAmount: 160000,
		InterestRate:          15,
		Explanation: model.Explanation{
			model.KeyIdentity: {
				{Name: "nin_verified", Detail: "NIN verified", Contribution: 5, Included: true},
				{Name: "bvn_verified", Detail: "BVN verified", Contribution: 5, Included: true},
			},
			model.KeyHistory: {
				{Name: "new_farmer", Detail: "New farmer - using base score (12.5/25)", Contribution: 12.5, Included: true},
			},
		},
	}
}

func TestFromResult(t *testing.T) {
	resp := dto.FromResult(sampleResult())

	assert.Equal(t, 58, resp.Score)
	assert.Equal(t, "Yellow", resp.RiskBand)
	assert.Equal(t, int64(160000), resp.RecommendedLoanAmount)
	assert.Equal(t, "NIN verified (+5.0), BVN verified (+5.0)", resp.Explanation["S1_Identity"])
	assert.Equal(t, "New farmer - using base score (12.5/25) (+12.5)", resp.Explanation["S3_History"])
	require.Len(t, resp.Factors["S1_Identity"], 2)
	assert.Equal(t, "bvn_verified", resp.Factors["S1_Identity"][1].Factor)
}

func TestFromResult_AbsentFlagFactor(t *testing.T) {
	r := sampleResult()
	r.Explanation[model.KeyIdentity][1] = model.Factor{
		Name: "bvn_verified", Detail: "BVN not verified", Points: 5,
	}

	resp := dto.FromResult(r)

	assert.Equal(t, "NIN verified (+5.0), BVN not verified (0/5)", resp.Explanation["S1_Identity"])
	bvn := resp.Factors["S1_Identity"][1]
	assert.False(t, bvn.Included)
	assert.Zero(t, bvn.Contribution)
	assert.Equal(t, 5.0, bvn.Points)
}

func TestFromModel(t *testing.T) {
	appID := uuid.New()
	a, err := model.NewCreditAssessment(uuid.New(), uuid.New(), appID, model.FarmerData{LoanAmount: 200000}, money.NGN)
	require.NoError(t, err)
	require.NoError(t, a.Complete(sampleResult()))

	resp := dto.FromModel(a)
	assert.Equal(t, a.ID(), resp.ID)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "200000.00", resp.RequestedAmount)
	assert.Equal(t, "160000.00", resp.RecommendedAmount)
	assert.Equal(t, "NGN", resp.Currency)
	assert.Equal(t, appID.String(), resp.ApplicationID)
	assert.Equal(t, 58, resp.Result.Score)
}

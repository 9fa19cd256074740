package valueobject_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/domain/valueobject"
)

func TestBandForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score      int
		band       valueobject.RiskBand
		rate       float64
		multiplier string
	}{
		{score: 100, band: valueobject.RiskBandGreen, rate: 12, multiplier: "1.0"},
		{score: 75, band: valueobject.RiskBandGreen, rate: 12, multiplier: "1.0"},
		{score: 74, band: valueobject.RiskBandYellow, rate: 15, multiplier: "0.8"},
		{score: 55, band: valueobject.RiskBandYellow, rate: 15, multiplier: "0.8"},
		{score: 54, band: valueobject.RiskBandOrange, rate: 18, multiplier: "0.6"},
		{score: 35, band: valueobject.RiskBandOrange, rate: 18, multiplier: "0.6"},
		{score: 34, band: valueobject.RiskBandRed, rate: 25, multiplier: "0.3"},
		{score: 0, band: valueobject.RiskBandRed, rate: 25, multiplier: "0.3"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			band := valueobject.BandForScore(tt.score)
			assert.True(t, band.Equal(tt.band), "score %d: got %s", tt.score, band)
			assert.Equal(t, tt.rate, band.InterestRate())
			assert.True(t, band.LoanMultiplier().Equal(decimal.RequireFromString(tt.multiplier)))
		})
	}
}

func TestRiskBand_MultiplierNeverExceedsOne(t *testing.T) {
	for score := 0; score <= 100; score++ {
		m := valueobject.BandForScore(score).LoanMultiplier()
		assert.True(t, m.LessThanOrEqual(decimal.NewFromInt(1)), "score %d", score)
	}
}

func TestRiskBandFromString(t *testing.T) {
	band, err := valueobject.RiskBandFromString("yellow")
	require.NoError(t, err)
	assert.Equal(t, valueobject.RiskBandYellow, band)
	assert.Equal(t, "Yellow", band.DisplayName())

	_, err = valueobject.RiskBandFromString("purple")
	assert.Error(t, err)
}

func TestRiskBand_RequiresTraining(t *testing.T) {
	assert.True(t, valueobject.RiskBandRed.RequiresTraining())
	assert.False(t, valueobject.RiskBandOrange.RequiresTraining())
	assert.True(t, valueobject.RiskBand{}.IsZero())
}

func TestRiskBand_TextRoundTrip(t *testing.T) {
	text, err := valueobject.RiskBandOrange.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ORANGE", string(text))

	var band valueobject.RiskBand
	require.NoError(t, band.UnmarshalText([]byte("orange")))
	assert.Equal(t, valueobject.RiskBandOrange, band)
	assert.Error(t, band.UnmarshalText([]byte("blue")))
}

package model

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// FarmerData is the complete input to one credit score computation. The
// Location and State fields are informational and never enter the score.
type FarmerData struct {
	Location string `json:"location"`
	State    string `json:"state"`

	CropTypes        []string  `json:"cropTypes"`
	YieldHistory     []float64 `json:"yieldHistory"`
	RepaymentHistory []float64 `json:"repaymentHistory"`
	MarketPrices     []float64 `json:"marketPrices"`

	Hectares            float64 `json:"hectares"`
	EquipmentValue      float64 `json:"equipmentValue"`
	CooperativeYieldAvg float64 `json:"cooperativeYieldAvg"`
	CooperativeRating   float64 `json:"cooperativeRating"`
	ProjectedRevenue    float64 `json:"projectedRevenue"`
	LoanAmount          float64 `json:"loanAmount"`
	WeatherRisk         float64 `json:"weatherRisk"`

	LivestockCount      int `json:"livestockCount"`
	PeerRecommendations int `json:"peerRecommendations"`
	LeadershipRoles     int `json:"leadershipRoles"`
	TrainingCompleted   int `json:"trainingCompleted"`

	NINVerified       bool `json:"ninVerified"`
	BVNVerified       bool `json:"bvnVerified"`
	HasCollateral     bool `json:"hasCollateral"`
	CooperativeMember bool `json:"cooperativeMember"`
}

// CheckComputable returns the guards the scoring engine cannot do without:
// finite numbers and non-zero divisors.
func (d FarmerData) CheckComputable() error {
	for _, f := range d.numericFields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalidInput(f.name, "must be a finite number")
		}
	}

	if d.ProjectedRevenue <= 0 {
		return invalidInput("projectedRevenue", "must be greater than zero")
	}
	if len(d.YieldHistory) > 0 && d.CooperativeYieldAvg <= 0 {
		return invalidInput("cooperativeYieldAvg", "must be greater than zero when yield history is present")
	}
	if len(d.MarketPrices) > 1 && mean(d.MarketPrices) <= 0 {
		return invalidInput("marketPrices", "mean price must be greater than zero")
	}
	return nil
}

// Validate applies the full range checks expected of inbound data and
// reports every violation at once.
func (d FarmerData) Validate() error {
	var violations []Violation
	add := func(field, reason string) {
		violations = append(violations, Violation{Field: field, Reason: reason})
	}

	var computable *InvalidInputError
	if errors.As(d.CheckComputable(), &computable) {
		violations = append(violations, computable.Violations...)
	}

	nonNegative := map[string]float64{
		"hectares":            d.Hectares,
		"equipmentValue":      d.EquipmentValue,
		"loanAmount":          d.LoanAmount,
		"livestockCount":      float64(d.LivestockCount),
		"peerRecommendations": float64(d.PeerRecommendations),
		"leadershipRoles":     float64(d.LeadershipRoles),
		"trainingCompleted":   float64(d.TrainingCompleted),
	}
	for _, name := range slices.Sorted(maps.Keys(nonNegative)) {
		if nonNegative[name] < 0 {
			add(name, "must not be negative")
		}
	}

	percent := func(field string, v float64) {
		if v < 0 || v > 100 {
			add(field, "must be between 0 and 100")
		}
	}
	percent("cooperativeRating", d.CooperativeRating)
	percent("weatherRisk", d.WeatherRisk)
	for i, r := range d.RepaymentHistory {
		percent(fmt.Sprintf("repaymentHistory[%d]", i), r)
	}

	for i, y := range d.YieldHistory {
		if y < 0 {
			add(fmt.Sprintf("yieldHistory[%d]", i), "must not be negative")
		}
	}
	for i, p := range d.MarketPrices {
		if p < 0 {
			add(fmt.Sprintf("marketPrices[%d]", i), "must not be negative")
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &InvalidInputError{Violations: dedupe(violations)}
}

type namedValue struct {
	name  string
	value float64
}

func (d FarmerData) numericFields() []namedValue {
	fields := []namedValue{
		{"hectares", d.Hectares},
		{"equipmentValue", d.EquipmentValue},
		{"cooperativeYieldAvg", d.CooperativeYieldAvg},
		{"cooperativeRating", d.CooperativeRating},
		{"projectedRevenue", d.ProjectedRevenue},
		{"loanAmount", d.LoanAmount},
		{"weatherRisk", d.WeatherRisk},
	}
	series := func(name string, values []float64) {
		for i, v := range values {
			fields = append(fields, namedValue{fmt.Sprintf("%s[%d]", name, i), v})
		}
	}
	series("yieldHistory", d.YieldHistory)
	series("repaymentHistory", d.RepaymentHistory)
	series("marketPrices", d.MarketPrices)
	return fields
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func dedupe(vs []Violation) []Violation {
	seen := make(map[Violation]struct{}, len(vs))
	out := vs[:0]
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

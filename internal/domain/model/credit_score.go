package model

import (
	"fmt"
	"strings"

	"github.com/farmcred/scoring/internal/domain/valueobject"
)

// SubscoreKey identifies one of the five score components in explanations.
type SubscoreKey string

const (
	KeyIdentity SubscoreKey = "S1_Identity"
	KeyAssets   SubscoreKey = "S2_Assets"
	KeyHistory  SubscoreKey = "S3_History"
	KeyTrust    SubscoreKey = "S4_Trust"
	KeyCapacity SubscoreKey = "S5_Capacity"
)

// SubscoreKeys lists the components in presentation order.
var SubscoreKeys = []SubscoreKey{KeyIdentity, KeyAssets, KeyHistory, KeyTrust, KeyCapacity}

// Subscore caps; they sum to 100.
const (
	IdentityCap = 20
	AssetsCap   = 25
	HistoryCap  = 25
	TrustCap    = 15
	CapacityCap = 15
)

// Subscores holds the rounded, capped component scores.
type Subscores struct {
	Identity int `json:"identity"`
	Assets   int `json:"assets"`
	History  int `json:"history"`
	Trust    int `json:"trust"`
	Capacity int `json:"capacity"`
}

// Total is the unweighted sum of the components.
func (s Subscores) Total() int {
	return s.Identity + s.Assets + s.History + s.Trust + s.Capacity
}

// Factor is one itemized input to a subscore. Contribution is the unrounded
// point value before the subscore cap is applied; Included is false when
// the underlying condition was absent. Points is the fixed value a flag
// factor is worth when present, and is zero for graded factors.
type Factor struct {
	Name         string  `json:"factor"`
	Detail       string  `json:"detail"`
	Contribution float64 `json:"contribution"`
	Included     bool    `json:"included"`
	Points       float64 `json:"points,omitempty"`
}

// String renders an absent flag factor as "(0/points)" and anything else
// as its signed contribution.
func (f Factor) String() string {
	if f.Points > 0 && !f.Included {
		return fmt.Sprintf("%s (0/%g)", f.Detail, f.Points)
	}
	return fmt.Sprintf("%s (+%.1f)", f.Detail, f.Contribution)
}

// Explanation maps each subscore to its factors.
type Explanation map[SubscoreKey][]Factor

// Render flattens each component's factors into one human-readable line.
func (e Explanation) Render() map[SubscoreKey]string {
	out := make(map[SubscoreKey]string, len(e))
	for key, factors := range e {
		parts := make([]string, 0, len(factors))
		for _, f := range factors {
			parts = append(parts, f.String())
		}
		out[key] = strings.Join(parts, ", ")
	}
	return out
}

// CreditScoreResult is the output of one engine run.
type CreditScoreResult struct {
	Explanation           Explanation          `json:"explanation"`
	RiskBand              valueobject.RiskBand `json:"riskBand"`
	Subscores             Subscores            `json:"subscores"`
	Score                 int                  `json:"score"`
	RecommendedLoanAmount int64                `json:"recommendedLoanAmount"`
	InterestRate          float64              `json:"interestRate"`
}

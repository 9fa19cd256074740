package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskBand is the lending classification derived from a credit score.
type RiskBand struct {
	value string
}

var (
	RiskBandGreen  = RiskBand{value: "GREEN"}
	RiskBandYellow = RiskBand{value: "YELLOW"}
	RiskBandOrange = RiskBand{value: "ORANGE"}
	RiskBandRed    = RiskBand{value: "RED"}
)

// Inclusive lower score bounds, evaluated top-down.
const (
	GreenThreshold  = 75
	YellowThreshold = 55
	OrangeThreshold = 35
)

var bandTerms = map[RiskBand]struct {
	multiplier decimal.Decimal
	rate       float64
}{
	RiskBandGreen:  {rate: 12, multiplier: decimal.RequireFromString("1.0")},
	RiskBandYellow: {rate: 15, multiplier: decimal.RequireFromString("0.8")},
	RiskBandOrange: {rate: 18, multiplier: decimal.RequireFromString("0.6")},
	RiskBandRed:    {rate: 25, multiplier: decimal.RequireFromString("0.3")},
}

// BandForScore classifies a final credit score.
func BandForScore(score int) RiskBand {
	switch {
	case score >= GreenThreshold:
		return RiskBandGreen
	case score >= YellowThreshold:
		return RiskBandYellow
	case score >= OrangeThreshold:
		return RiskBandOrange
	default:
		return RiskBandRed
	}
}

// RiskBandFromString accepts the band name in any letter case.
func RiskBandFromString(s string) (RiskBand, error) {
	band := RiskBand{value: strings.ToUpper(strings.TrimSpace(s))}
	if _, ok := bandTerms[band]; !ok {
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
	return band, nil
}

// InterestRate is the annual percentage rate offered in this band.
func (b RiskBand) InterestRate() float64 {
	return bandTerms[b].rate
}

// LoanMultiplier scales the requested amount into the recommended amount.
// It never exceeds 1.
func (b RiskBand) LoanMultiplier() decimal.Decimal {
	return bandTerms[b].multiplier
}

// RequiresTraining marks the band whose applicants are referred to
// agronomy or financial-literacy training alongside any offer.
func (b RiskBand) RequiresTraining() bool {
	return b == RiskBandRed
}

// DisplayName returns the title-case name, e.g. "Green".
func (b RiskBand) DisplayName() string {
	if b.value == "" {
		return ""
	}
	return b.value[:1] + strings.ToLower(b.value[1:])
}

func (b RiskBand) String() string { return b.value }

func (b RiskBand) IsZero() bool { return b.value == "" }

func (b RiskBand) Equal(other RiskBand) bool { return b.value == other.value }

func (b RiskBand) MarshalText() ([]byte, error) { return []byte(b.value), nil }

func (b *RiskBand) UnmarshalText(text []byte) error {
	parsed, err := RiskBandFromString(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

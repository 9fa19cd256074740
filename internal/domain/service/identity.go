package service

import "github.com/farmcred/scoring/internal/domain/model"

type identityFlag struct {
	name    string
	present string
	absent  string
	points  float64
	set     bool
}

func identityScore(d model.FarmerData) (int, []model.Factor) {
	flags := []identityFlag{
		{name: "nin_verified", present: "NIN verified", absent: "NIN not verified", points: 5, set: d.NINVerified},
		{name: "bvn_verified", present: "BVN verified", absent: "BVN not verified", points: 5, set: d.BVNVerified},
		{name: "collateral", present: "Collateral available", absent: "No collateral", points: 6, set: d.HasCollateral},
		{name: "cooperative_member", present: "Cooperative member", absent: "Not a cooperative member", points: 4, set: d.CooperativeMember},
	}

	var total float64
	factors := make([]model.Factor, 0, len(flags))
	for _, f := range flags {
		factor := model.Factor{Name: f.name, Detail: f.absent, Points: f.points}
		if f.set {
			factor.Detail = f.present
			factor.Contribution = f.points
			factor.Included = true
			total += f.points
		}
		factors = append(factors, factor)
	}

	return capAndRound(total, model.IdentityCap), factors
}

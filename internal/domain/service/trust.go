package service

import (
	"fmt"

	"github.com/farmcred/scoring/internal/domain/model"
)

func trustScore(d model.FarmerData) (int, []model.Factor) {
	rating := clamp(d.CooperativeRating, 0, 100) / 100 * 9
	peers := normalize(float64(d.PeerRecommendations), 0, 10) * 0.0375
	leadership := normalize(float64(d.LeadershipRoles), 0, 5) * 0.015
	training := normalize(float64(d.TrainingCompleted), 0, 10) * 0.0075

	factors := []model.Factor{
		{
			Name:         "cooperative_rating",
			Detail:       fmt.Sprintf("Cooperative rating: %g/100", d.CooperativeRating),
			Contribution: rating,
			Included:     d.CooperativeRating > 0,
		},
		{
			Name:         "peer_recommendations",
			Detail:       fmt.Sprintf("Peer recommendations: %d", d.PeerRecommendations),
			Contribution: peers,
			Included:     d.PeerRecommendations > 0,
		},
		{
			Name:         "leadership_roles",
			Detail:       fmt.Sprintf("Leadership roles: %d", d.LeadershipRoles),
			Contribution: leadership,
			Included:     d.LeadershipRoles > 0,
		},
		{
			Name:         "training_completed",
			Detail:       fmt.Sprintf("Training completed: %d", d.TrainingCompleted),
			Contribution: training,
			Included:     d.TrainingCompleted > 0,
		},
	}

	return capAndRound(rating+peers+leadership+training, model.TrustCap), factors
}

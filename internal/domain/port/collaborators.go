package port

import (
	"context"

	"github.com/google/uuid"
)

// IdentityStatus is the outcome of NIN and BVN verification.
type IdentityStatus struct {
	NINVerified bool
	BVNVerified bool
}

// FarmAssets comes from the farm and asset records store.
type FarmAssets struct {
	CropTypes      []string
	Hectares       float64
	EquipmentValue float64
	LivestockCount int
	HasCollateral  bool
}

// CooperativeStanding comes from the cooperative member records.
type CooperativeStanding struct {
	Rating              float64
	YieldAverage        float64
	PeerRecommendations int
	LeadershipRoles     int
	TrainingCompleted   int
	Member              bool
}

// TrackRecord is the farmer's yield and repayment history.
type TrackRecord struct {
	YieldHistory     []float64
	RepaymentHistory []float64
}

// MarketOutlook carries market and weather data for the farmer's location.
type MarketOutlook struct {
	Location         string
	State            string
	MarketPrices     []float64
	ProjectedRevenue float64
	WeatherRisk      float64
}

// IdentityVerifier reports NIN/BVN verification outcomes.
type IdentityVerifier interface {
	Verify(ctx context.Context, farmerID uuid.UUID) (IdentityStatus, error)
}

type FarmRecords interface {
	Assets(ctx context.Context, farmerID uuid.UUID) (FarmAssets, error)
}

type CooperativeRecords interface {
	Standing(ctx context.Context, farmerID uuid.UUID) (CooperativeStanding, error)
}

type RepaymentLedger interface {
	History(ctx context.Context, farmerID uuid.UUID) (TrackRecord, error)
}

type MarketData interface {
	Outlook(ctx context.Context, farmerID uuid.UUID) (MarketOutlook, error)
}

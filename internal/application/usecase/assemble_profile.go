package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/port"
)

// Collaborators groups the record stores a farmer profile is assembled from.
type Collaborators struct {
	Identity    port.IdentityVerifier
	Farms       port.FarmRecords
	Cooperative port.CooperativeRecords
	Repayments  port.RepaymentLedger
	Market      port.MarketData
}

// AssembleProfile builds a FarmerData from the five collaborators, queried
// concurrently. The first failure cancels the remaining lookups.
type AssembleProfile struct {
	sources Collaborators
}

// NewAssembleProfile creates a new AssembleProfile use case.
func NewAssembleProfile(sources Collaborators) *AssembleProfile {
	return &AssembleProfile{sources: sources}
}

// Execute gathers the profile for farmerID and attaches the requested loan amount.
func (uc *AssembleProfile) Execute(ctx context.Context, farmerID uuid.UUID, loanAmount float64) (model.FarmerData, error) {
	ctx, span := tracer.Start(ctx, "AssembleProfile")
	defer span.End()

	var (
		identity port.IdentityStatus
		assets   port.FarmAssets
		standing port.CooperativeStanding
		record   port.TrackRecord
		outlook  port.MarketOutlook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if identity, err = uc.sources.Identity.Verify(gctx, farmerID); err != nil {
			return fmt.Errorf("failed to verify identity: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if assets, err = uc.sources.Farms.Assets(gctx, farmerID); err != nil {
			return fmt.Errorf("failed to load farm assets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if standing, err = uc.sources.Cooperative.Standing(gctx, farmerID); err != nil {
			return fmt.Errorf("failed to load cooperative standing: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if record, err = uc.sources.Repayments.History(gctx, farmerID); err != nil {
			return fmt.Errorf("failed to load track record: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if outlook, err = uc.sources.Market.Outlook(gctx, farmerID); err != nil {
			return fmt.Errorf("failed to load market outlook: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.FarmerData{}, err
	}

	return model.FarmerData{
		Location:            outlook.Location,
		State:               outlook.State,
		NINVerified:         identity.NINVerified,
		BVNVerified:         identity.BVNVerified,
		CropTypes:           assets.CropTypes,
		Hectares:            assets.Hectares,
		EquipmentValue:      assets.EquipmentValue,
		LivestockCount:      assets.LivestockCount,
		HasCollateral:       assets.HasCollateral,
		YieldHistory:        record.YieldHistory,
		RepaymentHistory:    record.RepaymentHistory,
		CooperativeYieldAvg: standing.YieldAverage,
		CooperativeMember:   standing.Member,
		CooperativeRating:   standing.Rating,
		PeerRecommendations: standing.PeerRecommendations,
		LeadershipRoles:     standing.LeadershipRoles,
		TrainingCompleted:   standing.TrainingCompleted,
		MarketPrices:        outlook.MarketPrices,
		ProjectedRevenue:    outlook.ProjectedRevenue,
		WeatherRisk:         outlook.WeatherRisk,
		LoanAmount:          loanAmount,
	}, nil
}

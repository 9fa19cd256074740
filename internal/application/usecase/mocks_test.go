package usecase_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/port"
	"github.com/farmcred/scoring/pkg/events"
)

type mockAssessmentRepository struct {
	saved            *model.CreditAssessment
	saveFunc         func(ctx context.Context, a *model.CreditAssessment) error
	findByIDFunc     func(ctx context.Context, tenantID, id uuid.UUID) (*model.CreditAssessment, error)
	listByFarmerFunc func(ctx context.Context, tenantID, farmerID uuid.UUID, limit, offset int) ([]*model.CreditAssessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.CreditAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.saved = a
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CreditAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) ListByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID, limit, offset int) ([]*model.CreditAssessment, error) {
	if m.listByFarmerFunc != nil {
		return m.listByFarmerFunc(ctx, tenantID, farmerID, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockScoreCache struct {
	mu      sync.Mutex
	entries map[string]model.CreditScoreResult
	getErr  error
	putErr  error
	puts    int
}

func newMockScoreCache() *mockScoreCache {
	return &mockScoreCache{entries: make(map[string]model.CreditScoreResult)}
}

func (m *mockScoreCache) key(input model.FarmerData) string {
	return input.Location + "|" + input.State
}

func (m *mockScoreCache) Get(_ context.Context, input model.FarmerData) (model.CreditScoreResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return model.CreditScoreResult{}, false, m.getErr
	}
	r, ok := m.entries[m.key(input)]
	return r, ok, nil
}

func (m *mockScoreCache) Put(_ context.Context, input model.FarmerData, result model.CreditScoreResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[m.key(input)] = result
	return nil
}

type stubCollaborators struct {
	identityErr error
	marketErr   error
}

func (s stubCollaborators) Verify(context.Context, uuid.UUID) (port.IdentityStatus, error) {
	return port.IdentityStatus{NINVerified: true, BVNVerified: true}, s.identityErr
}

func (stubCollaborators) Assets(context.Context, uuid.UUID) (port.FarmAssets, error) {
	return port.FarmAssets{
		CropTypes:      []string{"Maize", "Soybeans"},
		Hectares:       2.5,
		EquipmentValue: 800000,
		LivestockCount: 15,
		HasCollateral:  true,
	}, nil
}

func (stubCollaborators) Standing(context.Context, uuid.UUID) (port.CooperativeStanding, error) {
	return port.CooperativeStanding{
		Rating:              85,
		YieldAverage:        3000,
		PeerRecommendations: 7,
		LeadershipRoles:     2,
		TrainingCompleted:   5,
		Member:              true,
	}, nil
}

func (stubCollaborators) History(context.Context, uuid.UUID) (port.TrackRecord, error) {
	return port.TrackRecord{
		YieldHistory:     []float64{2800, 3200, 2950},
		RepaymentHistory: []float64{95, 88, 92},
	}, nil
}

func (s stubCollaborators) Outlook(context.Context, uuid.UUID) (port.MarketOutlook, error) {
	return port.MarketOutlook{
		Location:         "Funtua",
		State:            "Katsina",
		MarketPrices:     []float64{180, 195, 175, 188},
		ProjectedRevenue: 1200000,
		WeatherRisk:      25,
	}, s.marketErr
}

func referenceFarmer() model.FarmerData {
	return model.FarmerData{
		NINVerified:         true,
		BVNVerified:         true,
		HasCollateral:       true,
		CooperativeMember:   true,
		Hectares:            2.5,
		CropTypes:           []string{"Maize", "Soybeans"},
		LivestockCount:      15,
		EquipmentValue:      800000,
		YieldHistory:        []float64{2800, 3200, 2950},
		RepaymentHistory:    []float64{95, 88, 92},
		CooperativeYieldAvg: 3000,
		CooperativeRating:   85,
		PeerRecommendations: 7,
		LeadershipRoles:     2,
		TrainingCompleted:   5,
		ProjectedRevenue:    1200000,
		LoanAmount:          400000,
		MarketPrices:        []float64{180, 195, 175, 188},
		WeatherRisk:         25,
		Location:            "Funtua",
		State:               "Katsina",
	}
}

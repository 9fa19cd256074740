package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/service"
	"github.com/farmcred/scoring/internal/infrastructure/postgres/migrations"
	"github.com/farmcred/scoring/pkg/money"
	"github.com/farmcred/scoring/pkg/testutil"
)

func TestNewAssessmentRepository(t *testing.T) {
	t.Run("creates repository with nil pool", func(t *testing.T) {
		repo := NewAssessmentRepository(nil)
		assert.NotNil(t, repo)
		assert.Nil(t, repo.pool)
	})
}

func sampleProfile() model.FarmerData {
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

func newCompleted(t *testing.T, tenantID, farmerID, applicationID uuid.UUID, profile model.FarmerData) *model.CreditAssessment {
	t.Helper()
	a, err := model.NewCreditAssessment(tenantID, farmerID, applicationID, profile, money.NGN)
	require.NoError(t, err)
	result, err := service.ComputeCreditScore(profile)
	require.NoError(t, err)
	require.NoError(t, a.Complete(result))
	return a
}

func TestAssessmentRepository_Integration(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, migrations.FS, ".")

	repo := NewAssessmentRepository(pg.Pool)
	tenantID, farmerID := testutil.TestLenderID, testutil.TestFarmerID

	t.Run("round-trips a completed assessment", func(t *testing.T) {
		a := newCompleted(t, tenantID, farmerID, uuid.New(), sampleProfile())
		require.NoError(t, repo.Save(ctx, a))

		got, err := repo.FindByID(ctx, tenantID, a.ID())
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, a.ID(), got.ID())
		assert.Equal(t, a.ApplicationID(), got.ApplicationID())
		assert.Equal(t, model.StatusCompleted, got.Status())
		assert.Equal(t, a.Result().Subscores, got.Result().Subscores)
		assert.Equal(t, 75, got.Result().Score)
		assert.True(t, a.Result().RiskBand.Equal(got.Result().RiskBand))
		assert.Equal(t, 12.0, got.Result().InterestRate)
		assert.Equal(t, int64(400000), got.Result().RecommendedLoanAmount)
		assert.Equal(t, a.Result().Explanation.Render(), got.Result().Explanation.Render())
		assert.True(t, a.Requested().Equal(got.Requested()))
		assert.Equal(t, a.Input(), got.Input())
		assert.Equal(t, 1, got.Version())
	})

	t.Run("returns nil for another tenant", func(t *testing.T) {
		a := newCompleted(t, tenantID, farmerID, uuid.Nil, sampleProfile())
		require.NoError(t, repo.Save(ctx, a))

		got, err := repo.FindByID(ctx, uuid.New(), a.ID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rejects a second assessment of the same application", func(t *testing.T) {
		appID := uuid.New()
		require.NoError(t, repo.Save(ctx, newCompleted(t, tenantID, farmerID, appID, sampleProfile())))

		err := repo.Save(ctx, newCompleted(t, tenantID, farmerID, appID, sampleProfile()))
		assert.ErrorIs(t, err, model.ErrDuplicateApplication)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		a := newCompleted(t, tenantID, farmerID, uuid.New(), sampleProfile())
		require.NoError(t, repo.Save(ctx, a))

		err := repo.Save(ctx, a)
		assert.ErrorIs(t, err, model.ErrVersionConflict)
	})

	t.Run("lists a farmer's assessments newest first", func(t *testing.T) {
		other := uuid.New()
		first := newCompleted(t, tenantID, other, uuid.Nil, sampleProfile())
		require.NoError(t, repo.Save(ctx, first))
		second := newCompleted(t, tenantID, other, uuid.Nil, model.FarmerData{ProjectedRevenue: 1, LoanAmount: 1000})
		require.NoError(t, repo.Save(ctx, second))

		page, err := repo.ListByFarmer(ctx, tenantID, other, 10, 0)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, second.ID(), page[0].ID())
		assert.Equal(t, first.ID(), page[1].ID())

		page, err = repo.ListByFarmer(ctx, tenantID, other, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, first.ID(), page[0].ID())
	})
}

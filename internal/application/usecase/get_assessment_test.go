package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/application/usecase"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/service"
	"github.com/farmcred/scoring/pkg/money"
)

func completedAssessment(t *testing.T, tenantID, farmerID uuid.UUID) *model.CreditAssessment {
	t.Helper()
	a, err := model.NewCreditAssessment(tenantID, farmerID, uuid.Nil, referenceFarmer(), money.NGN)
	require.NoError(t, err)
	result, err := service.ComputeCreditScore(referenceFarmer())
	require.NoError(t, err)
	require.NoError(t, a.Complete(result))
	a.DomainEvents()
	return a
}

func TestGetAssessment_Execute(t *testing.T) {
	tenantID := uuid.New()

	t.Run("returns the stored assessment", func(t *testing.T) {
		stored := completedAssessment(t, tenantID, uuid.New())
		repo := &mockAssessmentRepository{
			findByIDFunc: func(_ context.Context, tid, id uuid.UUID) (*model.CreditAssessment, error) {
				if tid == tenantID && id == stored.ID() {
					return stored, nil
				}
				return nil, nil
			},
		}
		uc := usecase.NewGetAssessment(repo)

		resp, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{TenantID: tenantID, AssessmentID: stored.ID()})

		require.NoError(t, err)
		assert.Equal(t, stored.ID(), resp.ID)
		assert.Empty(t, resp.ApplicationID)
		assert.Equal(t, 75, resp.Result.Score)
	})

	t.Run("maps a missing assessment to ErrAssessmentNotFound", func(t *testing.T) {
		uc := usecase.NewGetAssessment(&mockAssessmentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{TenantID: tenantID, AssessmentID: uuid.New()})

		assert.ErrorIs(t, err, model.ErrAssessmentNotFound)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (*model.CreditAssessment, error) {
				return nil, errors.New("timeout")
			},
		}
		uc := usecase.NewGetAssessment(repo)

		_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{TenantID: tenantID, AssessmentID: uuid.New()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to find assessment")
		assert.NotErrorIs(t, err, model.ErrAssessmentNotFound)
	})
}

func TestListFarmerAssessments_Execute(t *testing.T) {
	tenantID, farmerID := uuid.New(), uuid.New()

	tests := []struct {
		name          string
		limit, offset int
		wantLimit     int
		wantOffset    int
	}{
		{name: "defaults the page size", limit: 0, wantLimit: usecase.DefaultPageSize},
		{name: "caps the page size", limit: 500, wantLimit: usecase.MaxPageSize},
		{name: "keeps a valid page", limit: 5, offset: 10, wantLimit: 5, wantOffset: 10},
		{name: "clamps negative offset", limit: 5, offset: -3, wantLimit: 5, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			stored := completedAssessment(t, tenantID, farmerID)
			repo := &mockAssessmentRepository{
				listByFarmerFunc: func(_ context.Context, _, _ uuid.UUID, limit, offset int) ([]*model.CreditAssessment, error) {
					gotLimit, gotOffset = limit, offset
					return []*model.CreditAssessment{stored}, nil
				},
			}
			uc := usecase.NewListFarmerAssessments(repo)

			resp, err := uc.Execute(context.Background(), dto.ListFarmerAssessmentsRequest{
				TenantID: tenantID, FarmerID: farmerID, Limit: tt.limit, Offset: tt.offset,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, tt.wantOffset, gotOffset)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			require.Len(t, resp.Assessments, 1)
			assert.Equal(t, farmerID, resp.Assessments[0].FarmerID)
		})
	}
}

func TestAssembleProfile_Execute(t *testing.T) {
	t.Run("merges every collaborator", func(t *testing.T) {
		uc := assembler(stubCollaborators{})

		profile, err := uc.Execute(context.Background(), uuid.New(), 400000)

		require.NoError(t, err)
		result, err := service.ComputeCreditScore(profile)
		require.NoError(t, err)
		assert.Equal(t, 75, result.Score)
	})

	t.Run("fails when a collaborator fails", func(t *testing.T) {
		uc := assembler(stubCollaborators{identityErr: errors.New("provider timeout")})

		_, err := uc.Execute(context.Background(), uuid.New(), 1000)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to verify identity")
	})
}

package usecase

import (
	"context"
	"fmt"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/port"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFarmerAssessments pages through a farmer's assessments, newest first.
type ListFarmerAssessments struct {
	repo port.AssessmentRepository
}

// NewListFarmerAssessments creates a new ListFarmerAssessments use case.
func NewListFarmerAssessments(repo port.AssessmentRepository) *ListFarmerAssessments {
	return &ListFarmerAssessments{repo: repo}
}

func (uc *ListFarmerAssessments) Execute(ctx context.Context, req dto.ListFarmerAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	offset := max(req.Offset, 0)

	assessments, err := uc.repo.ListByFarmer(ctx, req.TenantID, req.FarmerID, limit, offset)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	resp := dto.ListAssessmentsResponse{
		Assessments: make([]dto.AssessmentResponse, 0, len(assessments)),
		Limit:       limit,
		Offset:      offset,
	}
	for _, a := range assessments {
		resp.Assessments = append(resp.Assessments, dto.FromModel(a))
	}
	return resp, nil
}

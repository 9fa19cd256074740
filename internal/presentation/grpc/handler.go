package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/pkg/auth"
)

// Role sets per operation.
var (
	scoreRoles  = []string{auth.RoleAdmin, auth.RoleLender, auth.RoleCooperative, auth.RoleFarmer}
	assessRoles = []string{auth.RoleAdmin, auth.RoleLender, auth.RoleCooperative, auth.RoleService}
	readRoles   = []string{auth.RoleAdmin, auth.RoleLender, auth.RoleCooperative}
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if claims.HasAnyRole(roles...) {
		return nil
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// tenantIDFromContext extracts the tenant ID from JWT claims in the context.
func tenantIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if claims.TenantID == uuid.Nil {
		return uuid.Nil, status.Error(codes.PermissionDenied, "token carries no tenant")
	}
	return claims.TenantID, nil
}

// statusFromError maps application errors onto gRPC status codes. Internal
// details are logged, never returned.
func (h *CreditScoringHandler) statusFromError(ctx context.Context, op string, err error) error {
	var invalid *model.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return status.Error(codes.InvalidArgument, invalid.Error())
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, "assessment not found")
	case errors.Is(err, model.ErrDuplicateApplication):
		return status.Error(codes.AlreadyExists, "loan application already assessed")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.logger.ErrorContext(ctx, "request failed", "operation", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

type scoreFarmerExecutor interface {
	Execute(ctx context.Context, req dto.ScoreFarmerRequest) (dto.ScoreResponse, error)
}

type assessLoanExecutor interface {
	Execute(ctx context.Context, req dto.AssessLoanApplicationRequest) (dto.AssessmentResponse, error)
}

type getAssessmentExecutor interface {
	Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error)
}

type listAssessmentsExecutor interface {
	Execute(ctx context.Context, req dto.ListFarmerAssessmentsRequest) (dto.ListAssessmentsResponse, error)
}

// Compile-time assertion that CreditScoringHandler implements CreditScoringServiceServer.
var _ CreditScoringServiceServer = (*CreditScoringHandler)(nil)

// CreditScoringHandler implements the gRPC CreditScoringServiceServer interface.
type CreditScoringHandler struct {
	UnimplementedCreditScoringServiceServer
	scoreFarmer     scoreFarmerExecutor
	assessLoan      assessLoanExecutor
	getAssessment   getAssessmentExecutor
	listAssessments listAssessmentsExecutor
	logger          *slog.Logger
}

// NewCreditScoringHandler creates a new gRPC handler.
func NewCreditScoringHandler(
	scoreFarmer scoreFarmerExecutor,
	assessLoan assessLoanExecutor,
	getAssessment getAssessmentExecutor,
	listAssessments listAssessmentsExecutor,
	logger *slog.Logger,
) *CreditScoringHandler {
	return &CreditScoringHandler{
		scoreFarmer:     scoreFarmer,
		assessLoan:      assessLoan,
		getAssessment:   getAssessment,
		listAssessments: listAssessments,
		logger:          logger,
	}
}

// ScoreFarmer computes a score without recording it.
func (h *CreditScoringHandler) ScoreFarmer(ctx context.Context, req *ScoreFarmerRequest) (*ScoreFarmerResponse, error) {
	if err := requireRole(ctx, scoreRoles...); err != nil {
		return nil, err
	}
	if req == nil || req.Profile == nil {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	result, err := h.scoreFarmer.Execute(ctx, dto.ScoreFarmerRequest{Profile: *req.Profile})
	if err != nil {
		return nil, h.statusFromError(ctx, "ScoreFarmer", err)
	}

	return &ScoreFarmerResponse{Score: toScoreMsg(result)}, nil
}

// AssessLoanApplication scores and records a loan request for the caller's tenant.
func (h *CreditScoringHandler) AssessLoanApplication(ctx context.Context, req *AssessLoanApplicationRequest) (*AssessLoanApplicationResponse, error) {
	if err := requireRole(ctx, assessRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	farmerID, err := uuid.Parse(req.FarmerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid farmer_id: %v", err)
	}

	var applicationID uuid.UUID
	if req.ApplicationID != "" {
		if applicationID, err = uuid.Parse(req.ApplicationID); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid application_id: %v", err)
		}
	}

	h.logger.InfoContext(ctx, "assessing loan application",
		slog.String("tenant_id", tenantID.String()),
		slog.String("farmer_id", farmerID.String()),
	)

	result, err := h.assessLoan.Execute(ctx, dto.AssessLoanApplicationRequest{
		TenantID:      tenantID,
		FarmerID:      farmerID,
		ApplicationID: applicationID,
		Currency:      req.Currency,
		LoanAmount:    req.LoanAmount,
		Profile:       req.Profile,
	})
	if err != nil {
		return nil, h.statusFromError(ctx, "AssessLoanApplication", err)
	}

	return &AssessLoanApplicationResponse{Assessment: toAssessmentMsg(result)}, nil
}

// GetAssessment returns one assessment of the caller's tenant.
func (h *CreditScoringHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{
		TenantID:     tenantID,
		AssessmentID: assessmentID,
	})
	if err != nil {
		return nil, h.statusFromError(ctx, "GetAssessment", err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

// ListFarmerAssessments pages through a farmer's assessments, newest first.
func (h *CreditScoringHandler) ListFarmerAssessments(ctx context.Context, req *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	farmerID, err := uuid.Parse(req.FarmerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid farmer_id: %v", err)
	}

	result, err := h.listAssessments.Execute(ctx, dto.ListFarmerAssessmentsRequest{
		TenantID: tenantID,
		FarmerID: farmerID,
		Limit:    int(req.PageSize),
		Offset:   int(req.Offset),
	})
	if err != nil {
		return nil, h.statusFromError(ctx, "ListFarmerAssessments", err)
	}

	resp := &ListFarmerAssessmentsResponse{
		Assessments: make([]*CreditAssessmentMsg, 0, len(result.Assessments)),
		PageSize:    int32(result.Limit),
		Offset:      int32(result.Offset),
	}
	for _, a := range result.Assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentMsg(a))
	}
	return resp, nil
}

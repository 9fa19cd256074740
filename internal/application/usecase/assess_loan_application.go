package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/port"
	"github.com/farmcred/scoring/internal/domain/service"
	"github.com/farmcred/scoring/pkg/money"
)

// AssessLoanApplication scores a loan request and records the assessment.
type AssessLoanApplication struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	scorer    service.CreditScorer
	profiles  *AssembleProfile
	logger    *slog.Logger
	metrics   *scoreMetrics
}

// NewAssessLoanApplication creates a new AssessLoanApplication use case.
// profiles may be nil, in which case every request must carry a profile.
func NewAssessLoanApplication(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	scorer service.CreditScorer,
	profiles *AssembleProfile,
	logger *slog.Logger,
) *AssessLoanApplication {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessLoanApplication{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		profiles:  profiles,
		logger:    logger,
		metrics:   newScoreMetrics(),
	}
}

// Execute resolves the farmer profile, scores it, persists the assessment
// and publishes its domain events.
func (uc *AssessLoanApplication) Execute(ctx context.Context, req dto.AssessLoanApplicationRequest) (dto.AssessmentResponse, error) {
	ctx, span := tracer.Start(ctx, "AssessLoanApplication")
	defer span.End()
	span.SetAttributes(attribute.String("scoring.farmer_id", req.FarmerID.String()))

	currency := money.NGN
	if req.Currency != "" {
		c, err := money.NewCurrency(req.Currency)
		if err != nil {
			return dto.AssessmentResponse{}, &model.InvalidInputError{
				Violations: []model.Violation{{Field: "currency", Reason: err.Error()}},
			}
		}
		currency = c
	}

	profile, err := uc.resolveProfile(ctx, req)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	if err := profile.Validate(); err != nil {
		return dto.AssessmentResponse{}, err
	}

	assessment, err := model.NewCreditAssessment(req.TenantID, req.FarmerID, req.ApplicationID, profile, currency)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	result, err := uc.scorer.Score(profile)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to score farmer: %w", err)
	}

	if err := assessment.Complete(result); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to complete assessment: %w", err)
	}

	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}
	uc.metrics.record(ctx, "assess", result)

	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "loan application assessed",
		"assessment_id", assessment.ID(),
		"farmer_id", assessment.FarmerID(),
		"score", result.Score,
		"risk_band", result.RiskBand.String(),
	)

	return dto.FromModel(assessment), nil
}

func (uc *AssessLoanApplication) resolveProfile(ctx context.Context, req dto.AssessLoanApplicationRequest) (model.FarmerData, error) {
	if req.Profile != nil {
		return *req.Profile, nil
	}
	if uc.profiles == nil {
		return model.FarmerData{}, &model.InvalidInputError{
			Violations: []model.Violation{{Field: "profile", Reason: "is required"}},
		}
	}
	if req.LoanAmount < 0 {
		return model.FarmerData{}, &model.InvalidInputError{
			Violations: []model.Violation{{Field: "loanAmount", Reason: "must not be negative"}},
		}
	}

	profile, err := uc.profiles.Execute(ctx, req.FarmerID, req.LoanAmount)
	if err != nil {
		return model.FarmerData{}, fmt.Errorf("failed to assemble farmer profile: %w", err)
	}
	return profile, nil
}

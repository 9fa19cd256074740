package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	pkgkafka "github.com/farmcred/scoring/pkg/kafka"
)

// LoanApplicationMessage is the intake record consumed from the loan
// applications topic.
type LoanApplicationMessage struct {
	Profile         *model.FarmerData `json:"profile,omitempty"`
	ApplicationID   string            `json:"application_id"`
	TenantID        string            `json:"tenant_id"`
	FarmerID        string            `json:"farmer_id"`
	Currency        string            `json:"currency,omitempty"`
	RequestedAmount float64           `json:"requested_amount"`
}

// LoanAssessor runs the assessment for one application.
type LoanAssessor interface {
	Execute(ctx context.Context, req dto.AssessLoanApplicationRequest) (dto.AssessmentResponse, error)
}

// LoanApplicationHandler turns intake messages into assessments.
type LoanApplicationHandler struct {
	assessor LoanAssessor
	logger   *slog.Logger
}

func NewLoanApplicationHandler(assessor LoanAssessor, logger *slog.Logger) *LoanApplicationHandler {
	return &LoanApplicationHandler{assessor: assessor, logger: logger}
}

// Handle implements pkgkafka.Handler. Malformed messages and profiles that
// fail validation are permanent failures; an application that was already
// assessed is acknowledged without reprocessing.
func (h *LoanApplicationHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var in LoanApplicationMessage
	if err := json.Unmarshal(msg.Value, &in); err != nil {
		return pkgkafka.Permanent(fmt.Errorf("failed to decode loan application: %w", err))
	}

	req, err := in.toRequest()
	if err != nil {
		return pkgkafka.Permanent(err)
	}

	resp, err := h.assessor.Execute(ctx, req)
	switch {
	case errors.Is(err, model.ErrDuplicateApplication):
		h.logger.InfoContext(ctx, "loan application already assessed",
			"application_id", req.ApplicationID,
		)
		return nil
	case errors.Is(err, model.ErrInvalidInput):
		return pkgkafka.Permanent(err)
	case err != nil:
		return fmt.Errorf("failed to assess loan application %s: %w", req.ApplicationID, err)
	}

	h.logger.InfoContext(ctx, "loan application consumed",
		"application_id", req.ApplicationID,
		"assessment_id", resp.ID,
		"risk_band", resp.Result.RiskBand,
	)
	return nil
}

func (m LoanApplicationMessage) toRequest() (dto.AssessLoanApplicationRequest, error) {
	applicationID, err := uuid.Parse(m.ApplicationID)
	if err != nil {
		return dto.AssessLoanApplicationRequest{}, fmt.Errorf("invalid application_id: %w", err)
	}
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return dto.AssessLoanApplicationRequest{}, fmt.Errorf("invalid tenant_id: %w", err)
	}
	farmerID, err := uuid.Parse(m.FarmerID)
	if err != nil {
		return dto.AssessLoanApplicationRequest{}, fmt.Errorf("invalid farmer_id: %w", err)
	}

	req := dto.AssessLoanApplicationRequest{
		TenantID:      tenantID,
		FarmerID:      farmerID,
		ApplicationID: applicationID,
		Currency:      m.Currency,
		LoanAmount:    m.RequestedAmount,
	}
	if m.Profile != nil {
		profile := *m.Profile
		if m.RequestedAmount > 0 {
			profile.LoanAmount = m.RequestedAmount
		}
		req.Profile = &profile
	}
	return req, nil
}

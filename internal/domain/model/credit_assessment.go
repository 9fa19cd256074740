package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmcred/scoring/internal/domain/event"
	"github.com/farmcred/scoring/internal/domain/valueobject"
	"github.com/farmcred/scoring/pkg/events"
	"github.com/farmcred/scoring/pkg/money"
)

// AssessmentStatus tracks whether the score has been attached.
type AssessmentStatus string

const (
	StatusPending   AssessmentStatus = "PENDING"
	StatusCompleted AssessmentStatus = "COMPLETED"
)

// CreditAssessment is the aggregate root recording one scored loan request.
type CreditAssessment struct {
	events.EventCollector

	assessedAt    time.Time
	createdAt     time.Time
	requested     money.Money
	recommended   money.Money
	status        AssessmentStatus
	input         FarmerData
	result        CreditScoreResult
	version       int
	id            uuid.UUID
	tenantID      uuid.UUID
	farmerID      uuid.UUID
	applicationID uuid.UUID
}

// NewCreditAssessment opens a pending assessment. applicationID may be
// uuid.Nil for ad-hoc assessments not tied to an intake record.
func NewCreditAssessment(tenantID, farmerID, applicationID uuid.UUID, input FarmerData, currency money.Currency) (*CreditAssessment, error) {
	if tenantID == uuid.Nil {
		return nil, errors.New("tenant ID is required")
	}
	if farmerID == uuid.Nil {
		return nil, errors.New("farmer ID is required")
	}
	if currency.IsZero() {
		currency = money.NGN
	}

	requested := money.FromFloat(input.LoanAmount, currency)
	if requested.IsNegative() {
		return nil, errors.New("requested loan amount must not be negative")
	}

	return &CreditAssessment{
		id:            uuid.New(),
		tenantID:      tenantID,
		farmerID:      farmerID,
		applicationID: applicationID,
		input:         input,
		requested:     requested,
		recommended:   money.Zero(currency),
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
	}, nil
}

// Complete attaches the engine result and records the resulting events.
func (a *CreditAssessment) Complete(result CreditScoreResult) error {
	if a.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if result.RiskBand.IsZero() {
		return fmt.Errorf("result has no risk band")
	}

	a.result = result
	a.recommended = money.New(decimal.NewFromInt(result.RecommendedLoanAmount), a.requested.Currency())
	a.status = StatusCompleted
	a.assessedAt = time.Now().UTC()
	a.version++

	a.Record(event.NewAssessmentCompleted(
		a.id.String(), a.tenantID.String(), a.farmerID.String(), a.applicationIDString(),
		result.Score, result.RiskBand.String(), result.InterestRate,
		a.requested.Amount(), a.recommended.Amount(), a.requested.Currency().Code(),
	))

	if result.RiskBand.RequiresTraining() {
		weakest, gaps := trainingGaps(result)
		a.Record(event.NewTrainingRecommended(
			a.id.String(), a.tenantID.String(), a.farmerID.String(),
			result.Score, weakest, gaps,
		))
	}

	return nil
}

// trainingGaps lists the factors the farmer is missing and the subscore
// furthest from its cap.
func trainingGaps(result CreditScoreResult) (string, []string) {
	caps := map[SubscoreKey]int{
		KeyIdentity: IdentityCap, KeyAssets: AssetsCap, KeyHistory: HistoryCap,
		KeyTrust: TrustCap, KeyCapacity: CapacityCap,
	}
	got := map[SubscoreKey]int{
		KeyIdentity: result.Subscores.Identity, KeyAssets: result.Subscores.Assets,
		KeyHistory: result.Subscores.History, KeyTrust: result.Subscores.Trust,
		KeyCapacity: result.Subscores.Capacity,
	}

	var weakest SubscoreKey
	worst := -1.0
	for _, key := range SubscoreKeys {
		shortfall := 1 - float64(got[key])/float64(caps[key])
		if shortfall > worst {
			worst, weakest = shortfall, key
		}
	}

	gaps := make([]string, 0)
	for _, key := range SubscoreKeys {
		for _, f := range result.Explanation[key] {
			if !f.Included {
				gaps = append(gaps, f.Name)
			}
		}
	}
	return string(weakest), gaps
}

func (a *CreditAssessment) applicationIDString() string {
	if a.applicationID == uuid.Nil {
		return ""
	}
	return a.applicationID.String()
}

// Reconstruct rebuilds a CreditAssessment from persisted data (no validation, no events).
func Reconstruct(
	id, tenantID, farmerID, applicationID uuid.UUID,
	input FarmerData,
	result CreditScoreResult,
	requested, recommended money.Money,
	status AssessmentStatus,
	version int,
	assessedAt, createdAt time.Time,
) *CreditAssessment {
	return &CreditAssessment{
		id:            id,
		tenantID:      tenantID,
		farmerID:      farmerID,
		applicationID: applicationID,
		input:         input,
		result:        result,
		requested:     requested,
		recommended:   recommended,
		status:        status,
		version:       version,
		assessedAt:    assessedAt,
		createdAt:     createdAt,
	}
}

func (a *CreditAssessment) ID() uuid.UUID                  { return a.id }
func (a *CreditAssessment) TenantID() uuid.UUID            { return a.tenantID }
func (a *CreditAssessment) FarmerID() uuid.UUID            { return a.farmerID }
func (a *CreditAssessment) ApplicationID() uuid.UUID       { return a.applicationID }
func (a *CreditAssessment) Input() FarmerData              { return a.input }
func (a *CreditAssessment) Result() CreditScoreResult      { return a.result }
func (a *CreditAssessment) Requested() money.Money         { return a.requested }
func (a *CreditAssessment) Recommended() money.Money       { return a.recommended }
func (a *CreditAssessment) Status() AssessmentStatus       { return a.status }
func (a *CreditAssessment) RiskBand() valueobject.RiskBand { return a.result.RiskBand }
func (a *CreditAssessment) Version() int                   { return a.version }
func (a *CreditAssessment) AssessedAt() time.Time          { return a.assessedAt }
func (a *CreditAssessment) CreatedAt() time.Time           { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *CreditAssessment) DomainEvents() []events.DomainEvent {
	return a.ClearEvents()
}

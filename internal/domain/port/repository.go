package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/pkg/events"
)

// AssessmentRepository defines the persistence port for credit assessments.
type AssessmentRepository interface {
	// Save inserts a new assessment or updates an existing one.
	Save(ctx context.Context, assessment *model.CreditAssessment) error

	// FindByID returns nil, nil when no assessment matches within the tenant.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CreditAssessment, error)

	// ListByFarmer returns a farmer's assessments, newest first.
	ListByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID, limit, offset int) ([]*model.CreditAssessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// ScoreCache memoizes engine results for identical profiles.
type ScoreCache interface {
	Get(ctx context.Context, input model.FarmerData) (model.CreditScoreResult, bool, error)
	Put(ctx context.Context, input model.FarmerData, result model.CreditScoreResult) error
}

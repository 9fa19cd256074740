package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/farmcred/scoring/internal/domain/model"
)

const instrumentationName = "github.com/farmcred/scoring/internal/application/usecase"

var tracer = otel.Tracer(instrumentationName)

// scoreMetrics records the outcome of every completed score. Instruments are
// resolved lazily against the global meter provider so that providers
// installed at start-up are picked up.
type scoreMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Int64Histogram
}

func newScoreMetrics() *scoreMetrics {
	meter := otel.Meter(instrumentationName)

	assessments, _ := meter.Int64Counter(
		"scoring_assessments_total",
		metric.WithDescription("Credit scores computed, by risk band."),
	)
	scores, _ := meter.Int64Histogram(
		"scoring_score",
		metric.WithDescription("Distribution of final credit scores."),
		metric.WithExplicitBucketBoundaries(10, 20, 35, 45, 55, 65, 75, 85, 100),
	)

	return &scoreMetrics{assessments: assessments, scores: scores}
}

func (m *scoreMetrics) record(ctx context.Context, operation string, result model.CreditScoreResult) {
	if m == nil || m.assessments == nil || m.scores == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("band", result.RiskBand.String()),
		attribute.String("operation", operation),
	)
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(result.Score), attrs)
}

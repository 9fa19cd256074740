package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/port"
	"github.com/farmcred/scoring/internal/domain/service"
)

// ScoreFarmer computes a credit score without persisting anything.
type ScoreFarmer struct {
	scorer  service.CreditScorer
	cache   port.ScoreCache
	logger  *slog.Logger
	metrics *scoreMetrics
}

// NewScoreFarmer creates a new ScoreFarmer use case. cache may be nil.
func NewScoreFarmer(scorer service.CreditScorer, cache port.ScoreCache, logger *slog.Logger) *ScoreFarmer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreFarmer{
		scorer:  scorer,
		cache:   cache,
		logger:  logger,
		metrics: newScoreMetrics(),
	}
}

// Execute validates the profile and scores it. Cache failures are logged and
// never fail the request.
func (uc *ScoreFarmer) Execute(ctx context.Context, req dto.ScoreFarmerRequest) (dto.ScoreResponse, error) {
	ctx, span := tracer.Start(ctx, "ScoreFarmer")
	defer span.End()

	if err := req.Profile.Validate(); err != nil {
		return dto.ScoreResponse{}, err
	}

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, req.Profile)
		if err != nil {
			uc.logger.WarnContext(ctx, "score cache lookup failed", "error", err)
		} else if ok {
			span.SetAttributes(attribute.Bool("scoring.cache_hit", true))
			resp := dto.FromResult(cached)
			resp.Cached = true
			return resp, nil
		}
	}

	result, err := uc.scorer.Score(req.Profile)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to score farmer: %w", err)
	}
	uc.metrics.record(ctx, "score", result)
	span.SetAttributes(
		attribute.Int("scoring.score", result.Score),
		attribute.String("scoring.band", result.RiskBand.String()),
	)

	if uc.cache != nil {
		if err := uc.cache.Put(ctx, req.Profile, result); err != nil {
			uc.logger.WarnContext(ctx, "score cache store failed", "error", err)
		}
	}

	return dto.FromResult(result), nil
}

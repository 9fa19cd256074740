package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/port"
	"github.com/farmcred/scoring/internal/domain/valueobject"
	"github.com/farmcred/scoring/pkg/money"
	pkgpostgres "github.com/farmcred/scoring/pkg/postgres"
)

var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

const uniqueViolation = "23505"

const selectAssessment = `
	SELECT id, tenant_id, farmer_id, application_id, status,
		score, risk_band, interest_rate,
		identity_score, assets_score, history_score, trust_score, capacity_score,
		requested_amount, recommended_amount, currency,
		explanation, input, version, assessed_at, created_at
	FROM credit_assessments
`

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save inserts the assessment, or updates it when the stored version is the
// one immediately preceding the aggregate's version.
func (r *AssessmentRepository) Save(ctx context.Context, a *model.CreditAssessment) error {
	explanation, err := json.Marshal(a.Result().Explanation)
	if err != nil {
		return fmt.Errorf("failed to encode explanation: %w", err)
	}
	input, err := json.Marshal(a.Input())
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}

	var applicationID *uuid.UUID
	if a.ApplicationID() != uuid.Nil {
		id := a.ApplicationID()
		applicationID = &id
	}
	var assessedAt *time.Time
	if !a.AssessedAt().IsZero() {
		t := a.AssessedAt()
		assessedAt = &t
	}

	result := a.Result()
	query := `
		INSERT INTO credit_assessments (
			id, tenant_id, farmer_id, application_id, status,
			score, risk_band, interest_rate,
			identity_score, assets_score, history_score, trust_score, capacity_score,
			requested_amount, recommended_amount, currency,
			explanation, input, version, assessed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW())
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			score = EXCLUDED.score,
			risk_band = EXCLUDED.risk_band,
			interest_rate = EXCLUDED.interest_rate,
			identity_score = EXCLUDED.identity_score,
			assets_score = EXCLUDED.assets_score,
			history_score = EXCLUDED.history_score,
			trust_score = EXCLUDED.trust_score,
			capacity_score = EXCLUDED.capacity_score,
			recommended_amount = EXCLUDED.recommended_amount,
			explanation = EXCLUDED.explanation,
			version = EXCLUDED.version,
			assessed_at = EXCLUDED.assessed_at,
			updated_at = NOW()
		WHERE credit_assessments.version = EXCLUDED.version - 1
	`

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			a.ID(),
			a.TenantID(),
			a.FarmerID(),
			applicationID,
			string(a.Status()),
			result.Score,
			result.RiskBand.String(),
			decimal.NewFromFloat(result.InterestRate),
			result.Subscores.Identity,
			result.Subscores.Assets,
			result.Subscores.History,
			result.Subscores.Trust,
			result.Subscores.Capacity,
			a.Requested().Amount(),
			a.Recommended().Amount(),
			a.Requested().Currency().Code(),
			explanation,
			input,
			a.Version(),
			assessedAt,
			a.CreatedAt(),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", model.ErrDuplicateApplication, a.ApplicationID())
			}
			return fmt.Errorf("failed to save assessment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s at version %d", model.ErrVersionConflict, a.ID(), a.Version())
		}
		return nil
	})
}

// FindByID retrieves an assessment within a tenant. It returns nil, nil when
// no row matches.
func (r *AssessmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CreditAssessment, error) {
	row := r.pool.QueryRow(ctx, selectAssessment+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	a, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByFarmer retrieves a farmer's assessments, newest first.
func (r *AssessmentRepository) ListByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID, limit, offset int) ([]*model.CreditAssessment, error) {
	rows, err := r.pool.Query(ctx,
		selectAssessment+` WHERE tenant_id = $1 AND farmer_id = $2 ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`,
		tenantID, farmerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]*model.CreditAssessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return assessments, nil
}

// scanAssessment reads one row produced by selectAssessment. pgx.ErrNoRows is
// returned unwrapped.
func scanAssessment(row pgx.Row) (*model.CreditAssessment, error) {
	var (
		id, tenantID, farmerID uuid.UUID
		applicationID          *uuid.UUID
		status                 string
		riskBand               string
		interestRate           decimal.Decimal
		subscores              model.Subscores
		score                  int
		requestedAmount        decimal.Decimal
		recommendedAmount      decimal.Decimal
		currencyCode           string
		explanationJSON        []byte
		inputJSON              []byte
		version                int
		assessedAt             *time.Time
		createdAt              time.Time
	)

	err := row.Scan(
		&id, &tenantID, &farmerID, &applicationID, &status,
		&score, &riskBand, &interestRate,
		&subscores.Identity, &subscores.Assets, &subscores.History, &subscores.Trust, &subscores.Capacity,
		&requestedAmount, &recommendedAmount, &currencyCode,
		&explanationJSON, &inputJSON, &version, &assessedAt, &createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	band, err := valueobject.RiskBandFromString(riskBand)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk band: %w", err)
	}
	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse currency: %w", err)
	}

	var explanation model.Explanation
	if err := json.Unmarshal(explanationJSON, &explanation); err != nil {
		return nil, fmt.Errorf("failed to decode explanation: %w", err)
	}
	var input model.FarmerData
	if err := json.Unmarshal(inputJSON, &input); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	recommended := money.New(recommendedAmount, currency)
	rate, _ := interestRate.Float64()
	result := model.CreditScoreResult{
		Score:                 score,
		RiskBand:              band,
		Subscores:             subscores,
		InterestRate:          rate,
		RecommendedLoanAmount: recommended.WholeUnits(),
		Explanation:           explanation,
	}

	var appID uuid.UUID
	if applicationID != nil {
		appID = *applicationID
	}
	var assessedAtVal time.Time
	if assessedAt != nil {
		assessedAtVal = *assessedAt
	}

	return model.Reconstruct(
		id, tenantID, farmerID, appID,
		input, result,
		money.New(requestedAmount, currency), recommended,
		model.AssessmentStatus(status), version,
		assessedAtVal, createdAt,
	), nil
}

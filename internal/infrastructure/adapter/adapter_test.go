package adapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/service"
)

func TestValidIdentityNumber(t *testing.T) {
	assert.True(t, ValidIdentityNumber("12345678901"))
	assert.False(t, ValidIdentityNumber("1234567890"))
	assert.False(t, ValidIdentityNumber("123456789012"))
	assert.False(t, ValidIdentityNumber("1234567890a"))
	assert.False(t, ValidIdentityNumber(""))
}

func TestStubRecords_Deterministic(t *testing.T) {
	ctx := context.Background()
	r := NewStubRecords()
	id := uuid.MustParse("6f1c2a9e-4b3d-4c8e-9a7f-2d5e8b1c0a34")

	a1, err := r.Assets(ctx, id)
	require.NoError(t, err)
	a2, err := r.Assets(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	o1, _ := r.Outlook(ctx, id)
	o2, _ := r.Outlook(ctx, id)
	assert.Equal(t, o1, o2)
}

func TestStubRecords_ProfilesAreScorable(t *testing.T) {
	ctx := context.Background()
	r := NewStubRecords()

	for range 200 {
		id := uuid.New()
		identity, err := r.Verify(ctx, id)
		require.NoError(t, err)
		assets, err := r.Assets(ctx, id)
		require.NoError(t, err)
		standing, err := r.Standing(ctx, id)
		require.NoError(t, err)
		record, err := r.History(ctx, id)
		require.NoError(t, err)
		outlook, err := r.Outlook(ctx, id)
		require.NoError(t, err)

		assert.True(t, identity.NINVerified)
		assert.NotEmpty(t, assets.CropTypes)
		assert.LessOrEqual(t, len(record.RepaymentHistory), len(record.YieldHistory))

		profile := model.FarmerData{
			NINVerified:         identity.NINVerified,
			BVNVerified:         identity.BVNVerified,
			CropTypes:           assets.CropTypes,
			Hectares:            assets.Hectares,
			EquipmentValue:      assets.EquipmentValue,
			LivestockCount:      assets.LivestockCount,
			HasCollateral:       assets.HasCollateral,
			YieldHistory:        record.YieldHistory,
			RepaymentHistory:    record.RepaymentHistory,
			CooperativeMember:   standing.Member,
			CooperativeYieldAvg: standing.YieldAverage,
			CooperativeRating:   standing.Rating,
			PeerRecommendations: standing.PeerRecommendations,
			LeadershipRoles:     standing.LeadershipRoles,
			TrainingCompleted:   standing.TrainingCompleted,
			MarketPrices:        outlook.MarketPrices,
			ProjectedRevenue:    outlook.ProjectedRevenue,
			WeatherRisk:         outlook.WeatherRisk,
			LoanAmount:          250000,
		}
		require.NoError(t, profile.Validate())
		result, err := service.ComputeCreditScore(profile)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
	}
}

type fixedNumbers struct{ nin, bvn string }

func (f fixedNumbers) IdentityNumbers(context.Context, uuid.UUID) (string, string, error) {
	return f.nin, f.bvn, nil
}

func testVerifier(url string, numbers IdentityNumberSource) *HTTPIdentityVerifier {
	return NewHTTPIdentityVerifier(IdentityProviderConfig{
		BaseURL:      url,
		APIKey:       "test-key",
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}, numbers, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHTTPIdentityVerifier_Verify(t *testing.T) {
	t.Run("verifies both identifiers", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			var body verificationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			paths = append(paths, r.URL.Path)
			_ = json.NewEncoder(w).Encode(verificationResponse{Verified: body.Number == "12345678901"})
		}))
		defer srv.Close()

		v := testVerifier(srv.URL, fixedNumbers{nin: "12345678901", bvn: "10987654321"})
		status, err := v.Verify(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.True(t, status.NINVerified)
		assert.False(t, status.BVNVerified)
		assert.Equal(t, []string{"/v1/verifications/nin", "/v1/verifications/bvn"}, paths)
	})

	t.Run("malformed numbers skip the provider", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			_ = json.NewEncoder(w).Encode(verificationResponse{Verified: true})
		}))
		defer srv.Close()

		v := testVerifier(srv.URL, fixedNumbers{nin: "12345", bvn: "12345678901"})
		status, err := v.Verify(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.False(t, status.NINVerified)
		assert.True(t, status.BVNVerified)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_ = json.NewEncoder(w).Encode(verificationResponse{Verified: true})
		}))
		defer srv.Close()

		v := testVerifier(srv.URL, fixedNumbers{nin: "12345678901"})
		status, err := v.Verify(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.True(t, status.NINVerified)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		v := testVerifier(srv.URL, fixedNumbers{nin: "12345678901"})
		_, err := v.Verify(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NIN verification failed")
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			http.Error(w, "unknown number", http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		v := testVerifier(srv.URL, fixedNumbers{bvn: "12345678901"})
		_, err := v.Verify(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

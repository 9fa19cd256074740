package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/valueobject"
)

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func profile() model.FarmerData {
	return model.FarmerData{
		NINVerified:      true,
		Hectares:         2.5,
		CropTypes:        []string{"Maize"},
		ProjectedRevenue: 900000,
		LoanAmount:       200000,
	}
}

func result() model.CreditScoreResult {
	return model.CreditScoreResult{
		Score:                 58,
		RiskBand:              valueobject.RiskBandYellow,
		Subscores:             model.Subscores{Identity: 5, Assets: 10, History: 13, Trust: 15, Capacity: 15},
		RecommendedLoanAmount: 160000,
		InterestRate:          15,
		Explanation: model.Explanation{
			model.KeyIdentity: {{Name: "nin_verified", Detail: "NIN verified", Contribution: 5, Included: true}},
		},
	}
}

func TestKey(t *testing.T) {
	a, err := Key(profile())
	require.NoError(t, err)
	b, err := Key(profile())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, len(keyPrefix)+64)

	changed := profile()
	changed.Hectares = 3
	c, err := Key(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestScoreCache_Get(t *testing.T) {
	ctx := context.Background()
	key, err := Key(profile())
	require.NoError(t, err)

	t.Run("hit", func(t *testing.T) {
		raw, err := json.Marshal(result())
		require.NoError(t, err)
		client := new(MockRedisClient)
		client.On("Get", ctx, key).Return(redis.NewStringResult(string(raw), nil))

		got, ok, err := NewScoreCache(client, time.Minute).Get(ctx, profile())

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, result(), got)
		client.AssertExpectations(t)
	})

	t.Run("miss", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, key).Return(redis.NewStringResult("", redis.Nil))

		_, ok, err := NewScoreCache(client, time.Minute).Get(ctx, profile())

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("connection error", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, key).Return(redis.NewStringResult("", errors.New("dial tcp: connection refused")))

		_, ok, err := NewScoreCache(client, time.Minute).Get(ctx, profile())

		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Get", ctx, key).Return(redis.NewStringResult("{not json", nil))

		_, ok, err := NewScoreCache(client, time.Minute).Get(ctx, profile())

		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestScoreCache_Put(t *testing.T) {
	ctx := context.Background()
	key, err := Key(profile())
	require.NoError(t, err)

	t.Run("stores with ttl", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Set", ctx, key, mock.AnythingOfType("[]uint8"), 10*time.Minute).
			Return(redis.NewStatusResult("OK", nil))

		require.NoError(t, NewScoreCache(client, 10*time.Minute).Put(ctx, profile(), result()))
		client.AssertExpectations(t)
	})

	t.Run("write error", func(t *testing.T) {
		client := new(MockRedisClient)
		client.On("Set", ctx, key, mock.Anything, time.Minute).
			Return(redis.NewStatusResult("", errors.New("READONLY")))

		err := NewScoreCache(client, time.Minute).Put(ctx, profile(), result())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write score cache")
	})
}

func TestNoopCache(t *testing.T) {
	var c NoopCache
	require.NoError(t, c.Put(context.Background(), profile(), result()))
	_, ok, err := c.Get(context.Background(), profile())
	require.NoError(t, err)
	assert.False(t, ok)
}

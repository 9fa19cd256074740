package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/port"
)

var (
	_ port.ScoreCache = (*ScoreCache)(nil)
	_ port.ScoreCache = NoopCache{}
)

// keyPrefix is bumped whenever the scoring rules change so stale results are
// never served.
const keyPrefix = "scoring:v1:"

// RedisClient is the subset of *redis.Client used by ScoreCache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Options configures the Redis connection.
type Options struct {
	// TLS enables an encrypted connection when non-nil.
	TLS      *tls.Config
	Addr     string
	Password string
	DB       int
}

// Connect opens a Redis client and verifies it with PING.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLS,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// ScoreCache stores engine results in Redis keyed by a hash of the input.
type ScoreCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewScoreCache(client RedisClient, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

// Key returns the cache key for input: the SHA-256 of its JSON encoding.
func Key(input model.FarmerData) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode farmer data: %w", err)
	}
	sum := sha256.Sum256(raw)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached result for input. A miss is not an error.
func (c *ScoreCache) Get(ctx context.Context, input model.FarmerData) (model.CreditScoreResult, bool, error) {
	key, err := Key(input)
	if err != nil {
		return model.CreditScoreResult{}, false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.CreditScoreResult{}, false, nil
	}
	if err != nil {
		return model.CreditScoreResult{}, false, fmt.Errorf("failed to read score cache: %w", err)
	}

	var result model.CreditScoreResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return model.CreditScoreResult{}, false, fmt.Errorf("failed to decode cached score: %w", err)
	}
	return result, true, nil
}

// Put stores result for input with the configured TTL.
func (c *ScoreCache) Put(ctx context.Context, input model.FarmerData, result model.CreditScoreResult) error {
	key, err := Key(input)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode score: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write score cache: %w", err)
	}
	return nil
}

// NoopCache never stores anything. It is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, model.FarmerData) (model.CreditScoreResult, bool, error) {
	return model.CreditScoreResult{}, false, nil
}

func (NoopCache) Put(context.Context, model.FarmerData, model.CreditScoreResult) error {
	return nil
}

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/domain/port"
)

var _ port.IdentityVerifier = (*HTTPIdentityVerifier)(nil)

// IdentityNumberSource looks up the NIN and BVN recorded for a farmer.
type IdentityNumberSource interface {
	IdentityNumbers(ctx context.Context, farmerID uuid.UUID) (nin, bvn string, err error)
}

// IdentityProviderConfig holds configuration for the identity provider client.
type IdentityProviderConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is the base delay, doubled on every retry.
	RetryBackoff time.Duration
}

// HTTPIdentityVerifier checks NIN and BVN against an external provider via
// POST {BaseURL}/v1/verifications/{nin|bvn}.
type HTTPIdentityVerifier struct {
	numbers IdentityNumberSource
	client  *http.Client
	logger  *slog.Logger
	config  IdentityProviderConfig
}

func NewHTTPIdentityVerifier(cfg IdentityProviderConfig, numbers IdentityNumberSource, logger *slog.Logger) *HTTPIdentityVerifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 200 * time.Millisecond
	}
	return &HTTPIdentityVerifier{
		numbers: numbers,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		config:  cfg,
	}
}

type verificationRequest struct {
	Number   string `json:"number"`
	FarmerID string `json:"farmer_id"`
}

type verificationResponse struct {
	Error    string `json:"error,omitempty"`
	Verified bool   `json:"verified"`
}

// errNotRetryable wraps provider responses that will not change on retry.
type errNotRetryable struct{ err error }

func (e errNotRetryable) Error() string { return e.err.Error() }
func (e errNotRetryable) Unwrap() error { return e.err }

// Verify checks both identifiers. Numbers that fail the format check are
// reported unverified without calling the provider.
func (v *HTTPIdentityVerifier) Verify(ctx context.Context, farmerID uuid.UUID) (port.IdentityStatus, error) {
	nin, bvn, err := v.numbers.IdentityNumbers(ctx, farmerID)
	if err != nil {
		return port.IdentityStatus{}, fmt.Errorf("failed to look up identity numbers: %w", err)
	}

	var status port.IdentityStatus
	if ValidIdentityNumber(nin) {
		if status.NINVerified, err = v.verifyWithRetry(ctx, "nin", nin, farmerID); err != nil {
			return port.IdentityStatus{}, err
		}
	}
	if ValidIdentityNumber(bvn) {
		if status.BVNVerified, err = v.verifyWithRetry(ctx, "bvn", bvn, farmerID); err != nil {
			return port.IdentityStatus{}, err
		}
	}
	return status, nil
}

func (v *HTTPIdentityVerifier) verifyWithRetry(ctx context.Context, kind, number string, farmerID uuid.UUID) (bool, error) {
	var lastErr error

	for attempt := 0; attempt <= v.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := v.config.RetryBackoff * (1 << (attempt - 1))
			jitter := time.Duration(rand.Int64N(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		verified, err := v.verify(ctx, kind, number, farmerID)
		if err == nil {
			return verified, nil
		}
		lastErr = err

		var permanent errNotRetryable
		if errors.As(err, &permanent) {
			break
		}
		v.logger.WarnContext(ctx, "identity verification attempt failed",
			"kind", kind,
			"farmer_id", farmerID,
			"attempt", attempt+1,
			"error", err,
		)
	}

	return false, fmt.Errorf("%s verification failed: %w", strings.ToUpper(kind), lastErr)
}

func (v *HTTPIdentityVerifier) verify(ctx context.Context, kind, number string, farmerID uuid.UUID) (bool, error) {
	body, err := json.Marshal(verificationRequest{Number: number, FarmerID: farmerID.String()})
	if err != nil {
		return false, errNotRetryable{err}
	}

	url := strings.TrimRight(v.config.BaseURL, "/") + "/v1/verifications/" + kind
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, errNotRetryable{err}
	}
	req.Header.Set("Content-Type", "application/json")
	if v.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.config.APIKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, err
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return false, fmt.Errorf("provider returned %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return false, errNotRetryable{fmt.Errorf("provider rejected request with %d: %s", resp.StatusCode, bytes.TrimSpace(raw))}
	}

	var out verificationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, errNotRetryable{fmt.Errorf("failed to decode provider response: %w", err)}
	}
	return out.Verified, nil
}

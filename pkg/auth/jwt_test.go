package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T, secret string, expiration time.Duration) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     secret,
		Issuer:     "farmcred-test",
		Expiration: expiration,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken_HMAC(t *testing.T) {
	svc := newTestJWTService(t, "test-secret-key-for-unit-tests", 15*time.Minute)
	userID, tenantID := uuid.New(), uuid.New()

	token, err := svc.GenerateToken(userID, tenantID, []string{RoleLender, RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, []string{RoleLender, RoleAdmin}, claims.Roles)
	assert.Equal(t, "farmcred-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestGenerateAndValidateToken_RSA(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM)})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), uuid.New(), []string{RoleCooperative})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleCooperative))

	_, err = validator.GenerateToken(uuid.New(), uuid.New(), nil)
	assert.Error(t, err, "validation-only service cannot issue")
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)
}

func TestValidateToken_Rejections(t *testing.T) {
	good := newTestJWTService(t, "secret-one", 15*time.Minute)

	t.Run("expired", func(t *testing.T) {
		expired := newTestJWTService(t, "secret-one", -time.Hour)
		token, err := expired.GenerateToken(uuid.New(), uuid.New(), []string{RoleFarmer})
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong signature", func(t *testing.T) {
		other := newTestJWTService(t, "secret-two", 15*time.Minute)
		token, err := other.GenerateToken(uuid.New(), uuid.New(), []string{RoleFarmer})
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign, err := NewJWTService(JWTConfig{Secret: "secret-one", Issuer: "elsewhere", Expiration: time.Minute})
		require.NoError(t, err)
		token, err := foreign.GenerateToken(uuid.New(), uuid.New(), nil)
		require.NoError(t, err)
		_, err = good.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestClaims_Roles(t *testing.T) {
	claims := Claims{Roles: []string{RoleLender, RoleCooperative}}

	assert.True(t, claims.HasRole(RoleLender))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasAnyRole(RoleAdmin, RoleCooperative))
	assert.False(t, claims.HasAnyRole(RoleAdmin, RoleFarmer))
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &Claims{UserID: uuid.New(), Roles: []string{RoleLender}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Same(t, expected, got)
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t, "interceptor-secret", time.Minute)
	interceptor := UnaryAuthInterceptor(svc, []string{"/grpc.health.v1.Health/Check"})

	var seen *Claims
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}

	t.Run("skipped method", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil,
			&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})

	t.Run("missing header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleLender})
		require.NoError(t, err)
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))

		_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, handler)
		require.NoError(t, err)
		require.NotNil(t, seen)
		assert.True(t, seen.HasRole(RoleLender))
	})
}

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t, "http-secret", time.Minute)
	protected := HTTPMiddleware(svc, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/scores", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleCooperative})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/scores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeqa/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := service.GenerateAccessToken(userID, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.Identity().IsAdmin())
	assert.InDelta(t, AccessTokenExpiry.Seconds(), claims.Remaining().Seconds(), 5)
}

func TestJWTService_RefreshTokenID(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	service := NewJWTService("test-secret")

	foreign, err := NewJWTService("other-secret").GenerateAccessToken(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		Role:   model.RoleUser,
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Type:             TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{ID: "anonymous"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	untyped, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           uuid.New(),
		Role:             model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ID: "untyped"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, refresh, err := service.GenerateRefreshToken(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired},
		{name: "no user", token: anonymous},
		{name: "no token type", token: untyped},
		{name: "refresh token as bearer", token: refresh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_RefreshRejectsAccessToken(t *testing.T) {
	service := NewJWTService("test-secret")

	access, err := service.GenerateAccessToken(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenStore_WithoutRedis(t *testing.T) {
	store := NewTokenStore(nil)

	_, err := store.GetRefreshToken(context.Background(), "missing")
	assert.Error(t, err)

	revoked, err := store.IsAccessTokenBlacklisted(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

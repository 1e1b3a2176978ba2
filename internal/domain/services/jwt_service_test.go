package services

import (
	"testing"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(secret string) InterfaceJWTService {
	return NewJWTService(&config.Config{JWTSecretKey: secret})
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	service := newTestJWTService("test-secret")

	token, err := service.GenerateToken(42, "master")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "master", claims.Role)
	assert.Equal(t, "harvestchain", claims.Issuer)

	// lifetime is twelve hours
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, (12 * time.Hour).Seconds(), remaining.Seconds(), 60)
}

func TestExtractClaims_WrongSecret(t *testing.T) {
	token, err := newTestJWTService("secret-a").GenerateToken(1, "admin")
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ExtractClaims(token)
	assert.Error(t, err)
}

func TestExtractClaims_TamperedToken(t *testing.T) {
	service := newTestJWTService("test-secret")
	token, err := service.GenerateToken(1, "admin")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = service.ExtractClaims(tampered)
	assert.Error(t, err)
}

func TestExtractClaims_ExpiredToken(t *testing.T) {
	secret := "test-secret"
	service := newTestJWTService(secret)

	// hand-craft a token that expired an hour ago, signed with the same key
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &AuthClaims{
		AdminID: 1,
		Role:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-13 * time.Hour)),
			Issuer:    "harvestchain",
		},
	})
	tokenString, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = service.ExtractClaims(tokenString)
	assert.Error(t, err)
}

func TestExtractClaims_NotAToken(t *testing.T) {
	service := newTestJWTService("test-secret")
	_, err := service.ExtractClaims("not-a-jwt")
	assert.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kdhingra/meattrack-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "meattrack-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: userID, Email: "owner@shop.test"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "owner@shop.test", claims.Email)
	require.Equal(t, cfg.Issuer, claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestMintAccessTokenValidation(t *testing.T) {
	cfg := testJWTConfig()

	_, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{})
	require.Error(t, err)

	cfg.Secret = ""
	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	require.Error(t, err)
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, signed)
	require.Error(t, err)
}

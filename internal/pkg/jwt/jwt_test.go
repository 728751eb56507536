package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/pkg/config"
	pkgErrors "issuehub/pkg/errors"
)

func setConfig(t *testing.T, expire int) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{Auth: config.AuthConfig{JWT: config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "issuehub",
		AccessTokenExpire: expire,
	}}}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setConfig(t, 3600)

	token, err := GenerateAccessToken(42)
	require.NoError(t, err)

	uid, err := VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	setConfig(t, 3600)

	_, err := VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, pkgErrors.ErrUnauthorized)
}

func TestVerifyRejectsExpired(t *testing.T) {
	setConfig(t, -60)

	token, err := GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = VerifyAccessToken(token)
	assert.ErrorIs(t, err, pkgErrors.ErrTokenExpired)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	setConfig(t, 3600)
	token, err := GenerateAccessToken(7)
	require.NoError(t, err)

	config.GlobalConfig.Auth.JWT.Secret = "rotated"
	_, err = VerifyAccessToken(token)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	setConfig(t, 3600)

	claims := UserClaims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "3",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	_, err = VerifyAccessToken(token)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}

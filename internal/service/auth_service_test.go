package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuehub/internal/dto"
	"issuehub/internal/pkg/jwt"
	pkgErrors "issuehub/pkg/errors"
)

func TestSignupLoginMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	signup, err := env.auth.Signup(ctx, &dto.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "pass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, signup.AccessToken)
	assert.Equal(t, "bearer", signup.TokenType)

	userID, err := env.auth.Authenticate(ctx, signup.AccessToken)
	require.NoError(t, err)

	me, err := env.auth.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Name)
	assert.Equal(t, "alice@example.com", me.Email)

	login, err := env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "pass123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = env.auth.Signup(ctx, &dto.SignupRequest{Name: "Other", Email: "alice@example.com", Password: "pass123"})
	requireCode(t, err, pkgErrors.CodeEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, &dto.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "pass123"})
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireCode(t, err, pkgErrors.CodeInvalidCredentials)

	_, err = env.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "pass123"})
	requireCode(t, err, pkgErrors.CodeInvalidCredentials)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Authenticate(ctx, "not-a-token")
	requireCode(t, err, pkgErrors.CodeUnauthorized)

	// 签名有效但用户不存在
	token, err := jwt.GenerateAccessToken(9999)
	require.NoError(t, err)
	_, err = env.auth.Authenticate(ctx, token)
	requireCode(t, err, pkgErrors.CodeUnauthorized)
}

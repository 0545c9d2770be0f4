package jwt_test

import (
	"sparkle/config"
	"sparkle/infras/jwt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string) jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret
	cfg.JWT.Issuer = "auth.sparkle.test"
	cfg.JWT.Audience = "authenticated"

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService("top-secret")

	token, err := svc.GenerateToken("user-1", "owner@shine.test", "business", "biz-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "owner@shine.test", claims.Email)
	assert.Equal(t, "business", claims.Role)
	assert.Equal(t, "biz-1", claims.BusinessID)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newService("top-secret")

	expired, err := svc.GenerateToken("user-1", "a@b.test", "customer", "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)

	foreign, err := newService("other-secret").GenerateToken("user-1", "a@b.test", "customer", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrMalformed)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrMalformed)
}

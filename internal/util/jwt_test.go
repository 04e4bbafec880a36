package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	token, issued, err := GenerateJWT(42, "equipo@rockalpatio.cl", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, issued.TokenID())

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "equipo@rockalpatio.cl", claims.Email)
	assert.Equal(t, issued.TokenID(), claims.TokenID())
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	_, a, err := GenerateJWT(1, "a@b.c", secret, time.Hour)
	require.NoError(t, err)
	_, b, err := GenerateJWT(1, "a@b.c", secret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a.TokenID(), b.TokenID())
}

func TestParseJWTRejects(t *testing.T) {
	token, _, err := GenerateJWT(42, "x@y.z", secret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	// a non-positive ttl falls back to the default, so build an expired token by hand
	claims := &Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
		ID:        "jti",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseJWT(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noID := &Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noID).SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = ParseJWT(s, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)

	_, err = ParseJWT("not-a-token", secret)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", ExtractToken(r))

	r.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", ExtractToken(r))

	r.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(r))
}

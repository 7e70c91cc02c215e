package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T, issuer string) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{SecretKey: "s3cret", Issuer: issuer})
	require.NoError(t, err)
	return v
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := newValidator(t, "pagegraph")

	token, err := v.GenerateToken("reporting-service", time.Minute)
	require.NoError(t, err)

	claims, err := v.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "reporting-service", claims.Subject)
	assert.Equal(t, "pagegraph", claims.Issuer)
}

func TestJWTValidator_Rejections(t *testing.T) {
	v := newValidator(t, "pagegraph")

	expired, err := v.GenerateToken("svc", -time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := newValidator(t, "pagegraph")
	other.secretKey = []byte("different")
	forged, err := other.GenerateToken("svc", time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	wrongIssuer, err := newValidator(t, "someone-else").GenerateToken("svc", time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSubject, err := v.GenerateToken("", time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(noSubject)
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = v.ValidateToken("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = v.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_RejectsOtherAlgorithms(t *testing.T) {
	v := newValidator(t, "")

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "svc", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	})
	signed, err := token.SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = v.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCallerContext(t *testing.T) {
	_, ok := CallerFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetCallerInContext(context.Background(), &Claims{Scope: "read"})
	claims, ok := CallerFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "read", claims.Scope)
}

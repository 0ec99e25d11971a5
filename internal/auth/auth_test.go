package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMakerRoundTrip(t *testing.T) {
	maker, err := NewJWTMaker(testSecret, 7*24*time.Hour)
	require.NoError(t, err)

	token, issued, err := maker.CreateToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt.Time, time.Minute)

	claims, err := maker.VerifyToken(token)
	require.NoError(t, err)

	id, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 42, IsAdmin: true}, id)
}

func TestJWTMakerRejectsExpired(t *testing.T) {
	maker, err := NewJWTMaker(testSecret, time.Hour)
	require.NoError(t, err)
	maker.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := maker.CreateToken(1, false)
	require.NoError(t, err)

	maker.now = time.Now
	_, err = maker.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMakerRejectsForeignSignature(t *testing.T) {
	maker, err := NewJWTMaker(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewJWTMaker("another-secret-of-enough-length", time.Hour)
	require.NoError(t, err)

	token, _, err := other.CreateToken(1, true)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMakerRejectsNoneAlgorithm(t *testing.T) {
	maker, err := NewJWTMaker(testSecret, time.Hour)
	require.NoError(t, err)

	claims := &Claims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTMakerShortSecret(t *testing.T) {
	_, err := NewJWTMaker("short", time.Hour)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, h.Verify("s3cret", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("s3cret", "not-a-hash"))
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 3})
	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(3), id.UserID)
}

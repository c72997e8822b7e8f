package devserver

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("s3cr3t")

	tok, err := GenerateToken("u-1", "tailor", secret, time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "tailor", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	secret := []byte("s3cr3t")

	expired, err := GenerateToken("u-1", "customer", secret, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	good, err := GenerateToken("u-1", "customer", secret, time.Hour, time.Now())
	require.NoError(t, err)
	_, err = ParseToken(good, []byte("other"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseToken("not-a-token", secret)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1"})
	s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(s, secret)
	assert.Error(t, err)
}

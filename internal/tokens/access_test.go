package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndParse(t *testing.T) {
	tok, exp, err := IssueAccessToken(42, "ADMIN", secret, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParse_Rejects(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		tok, _, err := IssueAccessToken(1, "USER", secret, time.Hour)
		require.NoError(t, err)
		_, err = AccessClaimsFromToken(tok, []byte("other"))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok, _, err := IssueAccessToken(1, "USER", secret, -time.Minute)
		require.NoError(t, err)
		_, err = AccessClaimsFromToken(tok, secret)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("other alg", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{Role: "USER"}).SignedString(secret)
		require.NoError(t, err)
		_, err = AccessClaimsFromToken(tok, secret)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := AccessClaimsFromToken("not.a.token", secret)
		assert.Error(t, err)
	})
}

func TestUserID_BadSubject(t *testing.T) {
	c := &AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.Error(t, err)
}

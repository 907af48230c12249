package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	Cost = bcrypt.MinCost

	h, err := HashPassword("john123")
	require.NoError(t, err)
	assert.NotEqual(t, "john123", h)

	assert.True(t, CheckPassword(h, "john123"))
	assert.False(t, CheckPassword(h, "john124"))
	assert.False(t, CheckPassword("not-a-hash", "john123"))
}

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	Cost = bcrypt.MinCost

	hash, err := HashPassword("pass123")
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", hash)

	assert.True(t, CheckPassword("pass123", hash))
	assert.False(t, CheckPassword("pass124", hash))
	assert.False(t, CheckPassword("pass123", "not-a-hash"))
}

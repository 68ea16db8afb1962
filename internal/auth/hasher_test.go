package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, hasher.Verify("secret123", hash))

	again, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("", hash))
	assert.False(t, hasher.Verify("secret123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("secret123", ""))
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0).(*bcryptHasher)
	assert.Equal(t, DefaultCost, hasher.cost)
}

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("curling-iron-9")
	require.NoError(t, err)
	assert.NotEqual(t, "curling-iron-9", hash)

	assert.NoError(t, h.Compare(hash, "curling-iron-9"))
	assert.Error(t, h.Compare(hash, "wrong-password"))
}

func TestHashRejectsShortCredential(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("1234567")
	assert.ErrorIs(t, err, ErrCredentialTooShort)
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)

	hash, err := h.Hash("a-long-enough-password")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "a-long-enough-password"))
}

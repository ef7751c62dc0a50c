package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("pw-123456", bcrypt.MinCost)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	hash, err = HashPassword("pw-123456", 0)
	require.NoError(t, err)
	cost, err = bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("pw-123456", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "pw-123456"))
	assert.ErrorIs(t, ComparePassword(hash, "pw-654321"), ErrPasswordMismatch)

	err = ComparePassword("unused", "pw-123456")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPasswordMismatch))
}

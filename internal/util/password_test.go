package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rock al patio")
	require.NoError(t, err)
	assert.NotEqual(t, "rock al patio", hash)

	assert.True(t, CheckPassword("rock al patio", hash))
	assert.False(t, CheckPassword("rock al patio ", hash))
	assert.False(t, CheckPassword("rock al patio", "not-a-hash"))
}

func TestHashPasswordTooLong(t *testing.T) {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := HashPassword(string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

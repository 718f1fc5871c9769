package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService_HashAndCompare(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.HashPassword("SecurePass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "SecurePass123!", hash)

	assert.True(t, svc.ComparePassword("SecurePass123!", hash))
	assert.False(t, svc.ComparePassword("WrongPass123!", hash))
	assert.False(t, svc.ComparePassword("", hash))
}

func TestPasswordService_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	hash1, err := svc.HashPassword("SecurePass123!")
	require.NoError(t, err)
	hash2, err := svc.HashPassword("SecurePass123!")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestPasswordService_CompareWithInvalidHash(t *testing.T) {
	svc := NewPasswordService()

	assert.False(t, svc.ComparePassword("SecurePass123!", "not-a-valid-hash"))
}

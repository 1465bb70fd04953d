package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(42, "0771234567", "alice", true, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "0771234567", claims.MobileNo)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTRejectsOtherSecretAndExpiry(t *testing.T) {
	SetJWTSecret("first")
	token, err := GenerateJWT(1, "0770000000", "bob", false, 1)
	require.NoError(t, err)

	SetJWTSecret("second")
	_, err = ValidateJWT(token)
	assert.Error(t, err)

	expired, err := GenerateJWT(1, "0770000000", "bob", false, -1)
	require.NoError(t, err)
	_, err = ValidateJWT(expired)
	assert.Error(t, err)
}

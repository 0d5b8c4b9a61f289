package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 10)

	token, exp, err := manager.GenerateToken("john@acme.com", []string{"ROLE_USER", "ROLE_ACCOUNTANT"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "john@acme.com", claims.Email)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ACCOUNTANT"}, claims.Roles)
	assert.Equal(t, "john@acme.com", claims.Subject)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 10)
	verifier := NewTokenManager("secret-b", 10)

	token, _, err := issuer.GenerateToken("john@acme.com", []string{"ROLE_USER"})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 10)

	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret_password_1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret_password_1", hash)

	assert.NoError(t, ComparePassword(hash, "secret_password_1"))
	assert.Error(t, ComparePassword(hash, "wrong_password_1"))
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hash, err := HashPassword("secret_password_1", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, defaultHashCost, cost)
}

package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SignupRequest(t *testing.T) {
	valid := SignupRequest{
		Name:     "John",
		Lastname: "Doe",
		Email:    "john@acme.com",
		Password: "secret_password_1",
	}
	assert.NoError(t, Validate(valid))
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	err := Validate(SignupRequest{})
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "name must not be empty")
	assert.Contains(t, msg, "lastname must not be empty")
	assert.Contains(t, msg, "email must not be empty")
	assert.Contains(t, msg, "password must not be empty")
	assert.Contains(t, msg, " && ")
}

func TestValidate_CorporateEmailOnly(t *testing.T) {
	err := Validate(SignupRequest{
		Name:     "John",
		Lastname: "Doe",
		Email:    "john@gmail.com",
		Password: "secret_password_1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must end with @acme.com")
}

func TestValidate_RoleToggleRequest(t *testing.T) {
	assert.NoError(t, Validate(RoleToggleRequest{
		User:      "john@acme.com",
		Role:      "ACCOUNTANT",
		Operation: "GRANT",
	}))

	err := Validate(RoleToggleRequest{User: "not-an-email", Role: "ACCOUNTANT", Operation: "GRANT"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user must be a valid email")
}

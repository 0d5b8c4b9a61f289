package errorutil

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
)

func TestToDomainError_RuleViolations(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{domain.ErrAccountNotFound, "ACCOUNT_NOT_FOUND", http.StatusNotFound},
		{domain.ErrRoleNotFound, "ROLE_NOT_FOUND", http.StatusNotFound},
		{domain.ErrRoleAlreadyAssigned, "ROLE_ALREADY_ASSIGNED", http.StatusBadRequest},
		{domain.ErrRoleNotAssigned, "ROLE_NOT_ASSIGNED", http.StatusBadRequest},
		{domain.ErrCannotRemoveLastRole, "CANNOT_REMOVE_LAST_ROLE", http.StatusBadRequest},
		{domain.ErrCannotDeleteAdmin, "CANNOT_DELETE_ADMIN", http.StatusBadRequest},
		{domain.ErrInvalidRoleCombination, "INVALID_ROLE_COMBINATION", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			mapped := ToDomainError(tc.err)
			require.NotNil(t, mapped)
			assert.Equal(t, tc.code, mapped.Code)
			assert.Equal(t, tc.status, mapped.HTTPStatus)
			assert.Equal(t, tc.err.Error(), mapped.Message)
		})
	}
}

func TestToDomainError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("toggling role: %w", domain.ErrInvalidRoleCombination)
	mapped := ToDomainError(wrapped)
	assert.Equal(t, "INVALID_ROLE_COMBINATION", mapped.Code)
}

func TestToDomainError_PassesThroughDomainError(t *testing.T) {
	original := NewValidationError("name must not be empty", nil)
	mapped := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainError_NoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainError_Unknown(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainError_UniqueViolationIsConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "role_assignments_email_role_key"}
	mapped := ToDomainError(fmt.Errorf("insert role: %w", pgErr))
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.ErrorIs(t, mapped, pgErr)
}

func TestToDomainError_NetworkFailureIsStoreUnavailable(t *testing.T) {
	cause := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	mapped := ToDomainError(fmt.Errorf("query accounts: %w", cause))
	assert.Equal(t, "STORE_UNAVAILABLE", mapped.Code)
	assert.Equal(t, http.StatusServiceUnavailable, mapped.HTTPStatus)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := NewInternalError(cause)
	assert.ErrorIs(t, wrapped, cause)
}

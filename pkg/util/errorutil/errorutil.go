package errorutil

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/account-service/internal/domain"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique constraint breaches.
const pgUniqueViolation = "23505"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(code, message string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "credential store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ruleViolations maps domain sentinels to wire codes and statuses. Not-found
// conditions are 404, business-rule rejections 400, per the caller contract.
var ruleViolations = []struct {
	sentinel error
	code     string
	status   int
}{
	{domain.ErrAccountNotFound, "ACCOUNT_NOT_FOUND", http.StatusNotFound},
	{domain.ErrRoleNotFound, "ROLE_NOT_FOUND", http.StatusNotFound},
	{domain.ErrRoleAlreadyAssigned, "ROLE_ALREADY_ASSIGNED", http.StatusBadRequest},
	{domain.ErrRoleNotAssigned, "ROLE_NOT_ASSIGNED", http.StatusBadRequest},
	{domain.ErrCannotRemoveLastRole, "CANNOT_REMOVE_LAST_ROLE", http.StatusBadRequest},
	{domain.ErrCannotDeleteAdmin, "CANNOT_DELETE_ADMIN", http.StatusBadRequest},
	{domain.ErrInvalidRoleCombination, "INVALID_ROLE_COMBINATION", http.StatusBadRequest},
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, rule := range ruleViolations {
		if errors.Is(err, rule.sentinel) {
			return &DomainError{
				Code:       rule.code,
				Message:    rule.sentinel.Error(),
				HTTPStatus: rule.status,
				Err:        err,
			}
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       "NOT_FOUND",
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
			Err:        err,
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		conflict := NewConflict("resource already exists", nil).(*DomainError)
		conflict.Err = err
		return conflict
	}
	if isStoreUnavailable(err) {
		return NewStoreUnavailable(err).(*DomainError)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// isStoreUnavailable reports whether the error is a connectivity-class
// failure against the store rather than a query-level one.
func isStoreUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

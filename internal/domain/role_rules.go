package domain

import (
	"fmt"
	"strings"
)

// RoleOperation is the requested direction of a role toggle.
type RoleOperation string

const (
	RoleOperationGrant  RoleOperation = "GRANT"
	RoleOperationRevoke RoleOperation = "REMOVE"
)

// ParseRoleOperation accepts the wire spellings of a toggle operation.
func ParseRoleOperation(raw string) (RoleOperation, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GRANT":
		return RoleOperationGrant, nil
	case "REMOVE", "REVOKE":
		return RoleOperationRevoke, nil
	default:
		return "", fmt.Errorf("unknown role operation %q", raw)
	}
}

// EvaluateRoleToggle decides whether granting or revoking a role is legal for
// an account currently holding currentRoles, and returns the canonical role
// name to add or remove. It is a pure function: no side effects, same inputs
// always produce the same verdict.
//
// An empty current role set means the account does not exist; role-catalog
// membership of the requested name is the caller's responsibility.
func EvaluateRoleToggle(currentRoles []string, op RoleOperation, roleName string) (string, error) {
	if len(currentRoles) == 0 {
		return "", ErrAccountNotFound
	}

	requested := CanonicalRole(roleName)
	held := make(map[string]struct{}, len(currentRoles))
	for _, role := range currentRoles {
		held[role] = struct{}{}
	}
	_, hasRequested := held[requested]
	_, hasAdmin := held[RoleAdmin]

	if op == RoleOperationRevoke {
		if !hasRequested {
			return "", ErrRoleNotAssigned
		}
		if len(held) == 1 {
			// Admin protection wins the error message; both cases deny
			// revoking the only role.
			if requested == RoleAdmin {
				return "", ErrCannotDeleteAdmin
			}
			return "", ErrCannotRemoveLastRole
		}
		return requested, nil
	}

	if hasRequested {
		return "", ErrRoleAlreadyAssigned
	}
	if requested == RoleAdmin || hasAdmin {
		return "", ErrInvalidRoleCombination
	}
	return requested, nil
}

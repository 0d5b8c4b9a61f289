package domain

import "errors"

// Business-rule rejections surfaced by the rule engine and the orchestrators.
var (
	ErrAccountNotFound        = errors.New("user not found!")
	ErrRoleNotFound           = errors.New("role not found!")
	ErrRoleAlreadyAssigned    = errors.New("the user already has the role!")
	ErrRoleNotAssigned        = errors.New("the user does not have a role!")
	ErrCannotRemoveLastRole   = errors.New("the user must have at least one role!")
	ErrCannotDeleteAdmin      = errors.New("can't remove ADMINISTRATOR role!")
	ErrInvalidRoleCombination = errors.New("the user cannot combine administrative and business roles!")
)

package domain

import "time"

// Account is the domain model for registered employees.
type Account struct {
	ID           int64
	Name         string
	Lastname     string
	Email        string
	PasswordHash string
	Locked       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountWithRoles pairs an account with its current role names.
type AccountWithRoles struct {
	Account Account
	Roles   []string
}

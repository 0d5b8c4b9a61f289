package dto

// RoleToggleRequest asks to grant or remove one role for one account.
type RoleToggleRequest struct {
	User      string `json:"user" validate:"required,email"`
	Role      string `json:"role" validate:"required"`
	Operation string `json:"operation" validate:"required"`
}

// AccessToggleRequest asks to lock or unlock an account.
type AccessToggleRequest struct {
	User      string `json:"user" validate:"required,email"`
	Operation string `json:"operation" validate:"required"`
}

// UserDeletedResponse confirms an account deletion.
type UserDeletedResponse struct {
	User   string `json:"user"`
	Status string `json:"status"`
}

// AccessToggleResponse confirms a lock state change.
type AccessToggleResponse struct {
	Status string `json:"status"`
}

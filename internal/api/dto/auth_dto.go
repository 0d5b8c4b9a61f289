package dto

import "time"

// SignupRequest payload for new accounts. Only corporate addresses are
// accepted.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Email    string `json:"email" validate:"required,email,endswith=@acme.com"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload for password rotation.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the public view of an account with its roles.
type AccountResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Lastname string   `json:"lastname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// ChangePasswordResponse confirms a password rotation.
type ChangePasswordResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

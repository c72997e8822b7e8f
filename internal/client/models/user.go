package models

import "time"

// User is the account returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	City  string `json:"city,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Credential is the bearer token persisted between runs.
type Credential struct {
	Token   string
	UserID  string
	SavedAt time.Time
}

// AuthResponse is the payload of login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	City     string `json:"city,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Profile is the editable part of the current user's account.
type Profile struct {
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Phone string `json:"phone,omitempty"`
}

package models

import "time"

// Role represents admin access levels
type Role string

const (
	RoleMainAdmin Role = "main_admin"
	RoleSubAdmin  Role = "sub_admin"
)

// Account represents an admin panel account
type Account struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // Never expose in JSON
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsMainAdmin returns true if the account holds the main admin role
func (a *Account) IsMainAdmin() bool {
	return a.Role == RoleMainAdmin
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	User  *Account `json:"user"`
	Token string   `json:"token"`
}

// UpdateAccountStatusRequest represents the request body for PATCH /admin/users/:id/status
type UpdateAccountStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// CreateSubAdminRequest represents the request body for creating a sub-admin
type CreateSubAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

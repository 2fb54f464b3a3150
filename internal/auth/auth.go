package auth

import (
	"errors"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var (
	// Expired and malformed tokens are reported identically on purpose.
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("insufficient role")
	ErrNotFound           = errors.New("admin not found")
	ErrTaken              = errors.New("username or email already exists")
	ErrPasswordTooShort   = errors.New("new password must be at least 6 characters long")
	ErrInvalidProfile     = errors.New("username and email are required")
)

type Admin struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HasRole reports whether the role is one of the required set.
func HasRole(role string, required ...string) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

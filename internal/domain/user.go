package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

// User represents an account within the platform.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
	Locale       string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingSubject  = errors.New("token missing subject")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("admin only")
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user currently holds role.
func (u *User) HasRole(role string) bool {
	return u != nil && u.Role == role
}

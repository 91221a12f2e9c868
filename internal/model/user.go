package model

import "time"

// Roles assignable to a user account.  Stored as an enum column on the
// users table; ADMIN unlocks the admin-only management endpoints.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a row in the `users` table.  The primary key is an
// opaque UUID string generated by the application.  PasswordHash is
// never serialized: the json:"-" tag keeps it out of every response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

package domain

import "time"

// Role is the closed set of actor roles. Authorization compares against
// these two values only; anything else is rejected at the boundary.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleScanner Role = "SCANNER"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleScanner
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

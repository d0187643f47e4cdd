package model

import "time"

// Role describes what an authenticated actor may do.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   int64
	Role Role
}

// IsAdmin reports whether the actor holds administrator capability.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor created the order.
func (a Actor) Owns(o *Order) bool {
	return o != nil && o.RequesterID == a.ID
}

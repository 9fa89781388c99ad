package domain

import "time"

// Role gates capabilities: admins may respond to any complaint,
// regular users only file and view their own.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleRegular || r == RoleAdmin
}

// User is an account identified by a unique email. Accounts are never
// updated or deleted, and the role is fixed at registration.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

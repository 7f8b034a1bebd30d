package domain

import (
	"context"
	"time"
)

// Role identifies the access level of a user. It is a closed set: every
// account is created as RoleUser and only seeding can produce RoleAdmin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a recognized role value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered gym member.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	DOB          time.Time
	Address      string
	Telephone    string
	Email        string
	Medical      string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Email uniqueness is enforced by the storage layer; Create and Update
// return ErrDuplicateEmail when it is violated.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	ListByRole(ctx context.Context, role Role) ([]User, error)
	// DeleteCascade removes the user together with all points of interest,
	// image records, and stored media belonging to them, atomically.
	DeleteCascade(ctx context.Context, id int64) error
}

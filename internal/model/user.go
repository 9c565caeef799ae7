package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines credential store operations for users and their roles.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
	// Create inserts the user and assigns the role atomically.
	Create(ctx context.Context, user User, role Role) (User, error)
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	FullName     string
	Username     string
	Email        string
	IsVeterinary bool
	PasswordHash []byte
	PasswordSalt []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a named role a user can be assigned to.
type Role string

const (
	// RoleVet is assigned to veterinary professionals.
	RoleVet Role = "Vet"
	// RoleNormal is assigned to every other user.
	RoleNormal Role = "Normal"
)

// Registration holds the data needed to create an account.
type Registration struct {
	FullName     string
	Email        string
	Password     string
	IsVeterinary bool
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token      string
	Expiration time.Time
	UserID     uuid.UUID
	Roles      []string
	User       User
}

// PasswordHasher derives and verifies password hashes.
type PasswordHasher interface {
	Validate(password string) error
	Hash(password string) (hash []byte, salt []byte, err error)
	Verify(password string, salt, hash []byte) bool
}

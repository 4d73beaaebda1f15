package core

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	RoleAdmin   = "admin"
	RoleHR      = "hr"
	RoleFinance = "finance"
)

// User represents a dashboard user.
type User struct {
	Email        string
	Name         string
	Role         string
	Department   string
	PasswordHash string
}

// CredentialChecker authenticates a login attempt.
type CredentialChecker interface {
	// Check returns the user when the password matches.
	Check(ctx context.Context, email, password string) (*User, error)

	// Lookup finds a user by email without checking a password.
	Lookup(ctx context.Context, email string) (*User, error)
}

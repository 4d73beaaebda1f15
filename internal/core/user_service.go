package core

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var demoUsers = []User{
	{Email: "admin@erp.com", Name: "Admin User", Role: RoleAdmin, Department: "Administration"},
	{Email: "hr@erp.com", Name: "HR Manager", Role: RoleHR, Department: "Human Resources"},
	{Email: "finance@erp.com", Name: "Finance Manager", Role: RoleFinance, Department: "Finance"},
}

type staticCredentials struct {
	users map[string]User
}

// NewStaticCredentials builds the demo user table. Every user shares
// password, which is kept only as a bcrypt hash.
func NewStaticCredentials(password string) (CredentialChecker, error) {
	return newStaticCredentials(password, bcrypt.DefaultCost)
}

func newStaticCredentials(password string, cost int) (*staticCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	users := make(map[string]User, len(demoUsers))
	for _, u := range demoUsers {
		u.PasswordHash = string(hash)
		users[u.Email] = u
	}
	return &staticCredentials{users: users}, nil
}

func (c *staticCredentials) Check(ctx context.Context, email, password string) (*User, error) {
	u, err := c.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (c *staticCredentials) Lookup(_ context.Context, email string) (*User, error) {
	u, ok := c.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

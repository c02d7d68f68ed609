// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserIDPrefix prefixes every generated user identifier.
const UserIDPrefix = "user_"

// User represents a user of the finance tracker.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// NewUser creates a new User with a generated ID. Username and email are
// normalized to lower case as they are compared case-insensitively.
func NewUser(username, email, fullName, passwordHash string) *User {
	return &User{
		ID:           UserIDPrefix + uuid.NewString(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Matches reports whether the given username or email identifies this user.
func (u *User) Matches(usernameOrEmail string) bool {
	term := strings.ToLower(strings.TrimSpace(usernameOrEmail))
	return u.Username == term || u.Email == term
}

// TouchLastLogin records a successful login at the given instant.
func (u *User) TouchLastLogin(at time.Time) {
	at = at.UTC()
	u.LastLogin = &at
}
